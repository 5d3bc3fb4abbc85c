package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_GetStorePath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "absolute store path",
			config: &Config{
				ProjectPath: "/project",
				Store:       StoreConfig{Driver: "json", Path: "/var/lib/phprun.json"},
			},
			expected: "/var/lib/phprun.json",
		},
		{
			name: "relative store path is under the project",
			config: &Config{
				ProjectPath: "/project",
				Store:       StoreConfig{Driver: "bolt", Path: "storage/phprun.db"},
			},
			expected: "/project/storage/phprun.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.config.GetStorePath()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}

	t.Run("default path under XDG state home", func(t *testing.T) {
		cfg := New()
		cfg.Store.Driver = "bolt"
		p, err := cfg.GetStorePath()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filepath.Base(p) != "state.db" || filepath.Base(filepath.Dir(p)) != StateDirName {
			t.Errorf("unexpected default store path %s", p)
		}
	})
}

func TestConfig_Paths(t *testing.T) {
	cfg := New()

	if got := cfg.GetPHPUnitPath("/proj"); got != "/proj/vendor/bin/phpunit" {
		t.Errorf("expected /proj/vendor/bin/phpunit, got %s", got)
	}
	if got := cfg.GetArtisanPath("/proj"); got != "/proj/artisan" {
		t.Errorf("expected /proj/artisan, got %s", got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}
	if !cfg.UseVendorBinary {
		t.Error("expected vendor binary to be used by default")
	}
	if !cfg.SuccessAsNotifications || cfg.FailuresAsNotifications {
		t.Error("expected successes as notifications and failures in the panel by default")
	}
	if cfg.BinaryPath != DefaultBinaryPath {
		t.Errorf("expected BinaryPath %s, got %s", DefaultBinaryPath, cfg.BinaryPath)
	}
	if cfg.Timeout() != 0 {
		t.Errorf("expected no timeout by default, got %s", cfg.Timeout())
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults without files", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Store.Driver != DefaultStoreDriver {
			t.Errorf("expected driver %s, got %s", DefaultStoreDriver, cfg.Store.Driver)
		}
	})

	t.Run("yaml then dotenv then environment", func(t *testing.T) {
		dir := t.TempDir()
		yml := "useVendorBinary: false\nbinaryPath: /opt/phpunit\ntimeout: 90s\nfailuresAsNotifications: true\n"
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		env := "PHPRUN_BINARY_PATH=/env/phpunit\nDB_HOST=db.local\n"
		if err := os.WriteFile(filepath.Join(dir, EnvFileName), []byte(env), 0644); err != nil {
			t.Fatalf("failed to write env: %v", err)
		}
		t.Setenv("PHPRUN_USE_TEST_FALLBACK", "true")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.UseVendorBinary {
			t.Error("expected useVendorBinary from yaml to be false")
		}
		if cfg.BinaryPath != "/env/phpunit" {
			t.Errorf("expected .env to override binaryPath, got %s", cfg.BinaryPath)
		}
		if !cfg.UseTestFallback {
			t.Error("expected environment to enable useTestFallback")
		}
		if !cfg.FailuresAsNotifications {
			t.Error("expected failuresAsNotifications from yaml")
		}
		if cfg.Timeout() != 90*time.Second {
			t.Errorf("expected 90s timeout, got %s", cfg.Timeout())
		}
		if got := cfg.Getenv("DB_HOST", "127.0.0.1"); got != "db.local" {
			t.Errorf("expected DB_HOST from .env, got %s", got)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := map[string]string{
			"unknown driver": "store:\n  driver: redis\n",
			"bad timeout":    "timeout: soon\n",
			"no binary":      "useVendorBinary: false\nbinaryPath: \"\"\n",
			"broken yaml":    "useVendorBinary: [\n",
		}
		for name, yml := range cases {
			t.Run(name, func(t *testing.T) {
				dir := t.TempDir()
				if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0644); err != nil {
					t.Fatalf("failed to write config: %v", err)
				}
				if _, err := Load(dir); err == nil {
					t.Error("expected an error")
				}
			})
		}
	})

	t.Run("invalid boolean override", func(t *testing.T) {
		t.Setenv("PHPRUN_EXCLUSIVE_RUNS", "maybe")
		if _, err := Load(t.TempDir()); err == nil {
			t.Error("expected an error for a non-boolean override")
		}
	})
}
