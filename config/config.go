// Package config loads miner configuration from a layered source: cobra
// flags override environment variables (prefixed CWMINER_) which override
// an XDG-resolved YAML config file, all bound through a shared viper
// instance.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/LabMember-001/chainweb-node/log"
)

// InitConfig reads the config file bound to viper (see cmd/chainweb-miner's
// root command for where ConfigFile is set from the XDG config dir) and
// wires up environment-variable overrides. It panics only when the config
// file exists but cannot be parsed; a missing file is not an error, since a
// miner can run entirely off flags and environment variables.
func InitConfig() {
	log.Infof("loading config from file: %s", viper.ConfigFileUsed())
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) || errors.Is(err, viper.ConfigFileNotFoundError{}) {
			log.Warnf("config file not found: %s", viper.ConfigFileUsed())
		} else {
			log.Errorf("error reading config file: %s", err)
			panic(err)
		}
	}

	log.Infof("loading config from environment variables with prefix: '%s_'", ENV_PREFIX)
	viper.SetEnvPrefix(ENV_PREFIX)
	// Keys use dashes (log-level); their environment variables use
	// underscores (CWMINER_LOG_LEVEL).
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// SaveConfig writes viper's current parameter set to the config file in
// use, creating it (and its parent directory) if necessary, and backing up
// any existing file to a ".bak" sibling first.
func SaveConfig() error {
	configFile := viper.ConfigFileUsed()
	log.Debugf("saving/updating config file: %s", configFile)

	if _, err := os.Stat(configFile); err == nil {
		if err := os.Rename(configFile, configFile+".bak"); err != nil {
			return err
		}
	} else if os.IsNotExist(err) {
		configDir := viper.GetString(CONFIG_DIR)
		if configDir != "" {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return err
			}
		}
		f, err := os.Create(configFile)
		if err != nil {
			return err
		}
		f.Close()
	} else {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
