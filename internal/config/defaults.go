package config

const (
	// ConfigFileName is the per-project configuration file
	ConfigFileName = ".phprun.yaml"
	// EnvFileName is the project dotenv file read for overrides and database settings
	EnvFileName = ".env"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "PHPRUN_"

	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultBinaryPath is used when the vendor binary is disabled
	DefaultBinaryPath = "/usr/local/bin/phpunit"
	// DefaultOutputFontSize is the output view font size
	DefaultOutputFontSize = "14px"
	// DefaultStoreDriver is the default run-record backend
	DefaultStoreDriver = "json"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "warn"

	// StateDirName is the directory under the XDG state home holding the stores
	StateDirName = "phprun"
)

// StoreDrivers lists the supported run-record backends
var StoreDrivers = []string{"json", "bolt", "mysql"}
