package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phprun/internal/config"
	"phprun/internal/domain"
)

func TestBuilder_Build(t *testing.T) {
	vendor := config.New()

	custom := config.New()
	custom.UseVendorBinary = false
	custom.BinaryPath = "php /opt/phpunit.phar"

	tests := []struct {
		name     string
		config   *config.Config
		kind     domain.Kind
		function string
		file     string
		expected string
	}{
		{
			name:     "vendor binary with function and file",
			config:   vendor,
			kind:     domain.KindUnit,
			function: "testFoo",
			file:     "/a/FooTest.php",
			expected: "/proj/vendor/bin/phpunit --filter=testFoo$ /a/FooTest.php",
		},
		{
			name:     "browser kind overrides binary policy",
			config:   custom,
			kind:     domain.KindBrowser,
			file:     "/a/T.php",
			expected: "php /proj/artisan dusk --without-tty /a/T.php",
		},
		{
			name:     "configured binary path",
			config:   custom,
			kind:     domain.KindUnit,
			file:     "/a/FooTest.php",
			expected: "php /opt/phpunit.phar /a/FooTest.php",
		},
		{
			name:     "suite run is a bare invocation",
			config:   vendor,
			kind:     domain.KindUnit,
			expected: "/proj/vendor/bin/phpunit",
		},
		{
			name:     "filter without file",
			config:   vendor,
			kind:     domain.KindUnit,
			function: "test_it_works",
			expected: "/proj/vendor/bin/phpunit --filter=test_it_works$",
		},
		{
			name:     "path with spaces is quoted",
			config:   vendor,
			kind:     domain.KindUnit,
			file:     "/a/My Tests/FooTest.php",
			expected: "/proj/vendor/bin/phpunit '/a/My Tests/FooTest.php'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewBuilder(tt.config).Build(tt.kind, tt.function, tt.file, "/proj")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec.Render())
			assert.Equal(t, "/proj", spec.Dir)
		})
	}
}

func TestBuilder_Args(t *testing.T) {
	spec, err := NewBuilder(config.New()).Build(domain.KindUnit, "testFoo", "/a/My Tests/FooTest.php", "/proj")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/proj/vendor/bin/phpunit",
		"--filter=testFoo$",
		"/a/My Tests/FooTest.php",
	}, spec.Args())
}

func TestBuilder_RejectsNonIdentifierFilter(t *testing.T) {
	builder := NewBuilder(config.New())

	for _, name := range []string{"testFoo; rm -rf /", "&byRef", "test Foo", "1test", "$(id)"} {
		t.Run(name, func(t *testing.T) {
			_, err := builder.Build(domain.KindUnit, name, "/a/FooTest.php", "/proj")
			assert.ErrorIs(t, err, ErrInvalidFunctionName)
		})
	}
}

func TestBuilder_AcceptsNonASCIIIdentifiers(t *testing.T) {
	builder := NewBuilder(config.New())

	for _, name := range []string{"testÜber", "test_größe", "тестИмя", "_test1"} {
		t.Run(name, func(t *testing.T) {
			spec, err := builder.Build(domain.KindUnit, name, "/a/FooTest.php", "/proj")
			require.NoError(t, err)
			assert.Contains(t, spec.Args(), "--filter="+name+"$")
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"testFoo", true},
		{"testÜber", true},
		{"Über", true},
		{"t1", true},
		{"", false},
		{"1test", false},
		{"test-foo", false},
		{"test\x00", false},
		{"test\x7f", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isIdentifier(tt.name), "%q", tt.name)
	}
}

func TestBuilder_EmptyBinaryPath(t *testing.T) {
	cfg := config.New()
	cfg.UseVendorBinary = false
	cfg.BinaryPath = "   "

	_, err := NewBuilder(cfg).Build(domain.KindUnit, "", "", "/proj")
	assert.Error(t, err)
}

func TestQuote(t *testing.T) {
	cases := map[string]string{
		"/a/FooTest.php":   "/a/FooTest.php",
		"":                 "''",
		"a b":              "'a b'",
		"it's":             `'it'\''s'`,
		"$HOME/x":          "'$HOME/x'",
		"C:/tests/foo.php": "C:/tests/foo.php",
	}
	for in, expected := range cases {
		assert.Equal(t, expected, Quote(in), "Quote(%q)", in)
	}
}
