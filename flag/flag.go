// Package flag resolves command line options bound to viper.
//
// A value set on the command line wins over a PO2JSON_* environment
// variable, which wins over the config file.
package flag

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by viper.
const EnvPrefix = "PO2JSON"

// InitEnv makes viper look up PO2JSON_<NAME> for every key, with dashes in
// key names replaced by underscores.
func InitEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Verbose returns option "--verbose".
func Verbose() int {
	return viper.GetInt("verbose")
}

// Quiet returns option "--quiet".
func Quiet() int {
	return viper.GetInt("quiet")
}

// ConfigFile returns option "--config".
func ConfigFile() string {
	return viper.GetString("config")
}

// Bool returns the bound option key if it was set on the command line or
// in the environment, and fallback otherwise.
func Bool(key string, fallback bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return fallback
}

// String works like Bool for string options. Empty values are ignored.
func String(key string, fallback string) string {
	if viper.IsSet(key) {
		if s := viper.GetString(key); s != "" {
			return s
		}
	}
	return fallback
}

// Int works like Bool for integer options. Values below 1 are ignored.
func Int(key string, fallback int) int {
	if viper.IsSet(key) {
		if n := viper.GetInt(key); n > 0 {
			return n
		}
	}
	return fallback
}
