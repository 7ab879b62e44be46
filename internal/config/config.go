package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	Clean       bool   `mapstructure:"clean"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	ColorID     string `mapstructure:"color_id"`
	ColorField  string `mapstructure:"color_field"`
	ColorDesc   string `mapstructure:"color_desc"`
	ColumnID    int    `mapstructure:"column_id"`
	ColumnField int    `mapstructure:"column_field"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper.
// configFile, when set, replaces the search path lookup.
func Init(configFile string) error {
	viper.SetDefault("format", "csv")
	viper.SetDefault("output", "")
	viper.SetDefault("clean", true)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("color_id", "36")    // Cyan
	viper.SetDefault("color_field", "33") // Yellow
	viper.SetDefault("color_desc", "90")  // Gray
	viper.SetDefault("column_id", 16)
	viper.SetDefault("column_field", 32)

	if configFile != "" {
		viper.SetConfigFile(expandTilde(configFile))
	} else {
		viper.SetConfigName("brendatab")
		viper.SetConfigType("yaml")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "brendatab"))
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("BRENDATAB")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetFormat returns the export format name
func GetFormat() string {
	return viper.GetString("format")
}

// GetOutput returns the export destination, empty for stdout
func GetOutput() string {
	return expandTilde(viper.GetString("output"))
}

// GetClean returns whether identifier normalization runs
func GetClean() bool {
	return viper.GetBool("clean")
}

// GetLogLevel returns the log level name
func GetLogLevel() string {
	return viper.GetString("log_level")
}

// GetLogFormat returns text or json
func GetLogFormat() string {
	return viper.GetString("log_format")
}

// GetColorID returns ANSI color code for the ID column
func GetColorID() string {
	return viper.GetString("color_id")
}

// GetColorField returns ANSI color code for the field column
func GetColorField() string {
	return viper.GetString("color_field")
}

// GetColorDesc returns ANSI color code for descriptions
func GetColorDesc() string {
	return viper.GetString("color_desc")
}

// GetColumnID returns the ID column width in the browser
func GetColumnID() int {
	return viper.GetInt("column_id")
}

// GetColumnField returns the field column width in the browser
func GetColumnField() int {
	return viper.GetInt("column_field")
}

// SetFormat sets export format at runtime
func SetFormat(format string) {
	viper.Set("format", format)
	C.Format = format
}

// SetOutput sets export destination at runtime
func SetOutput(path string) {
	viper.Set("output", path)
	C.Output = path
}

// SetClean toggles normalization at runtime
func SetClean(clean bool) {
	viper.Set("clean", clean)
	C.Clean = clean
}
