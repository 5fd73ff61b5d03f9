package main

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LabMember-001/chainweb-node/config"
	"github.com/LabMember-001/chainweb-node/log"
)

var rootCmd = &cobra.Command{
	Use:               config.APP_NAME,
	Short:             "chainweb-miner mines blocks across a multi-chain cut",
	PersistentPreRunE: rootCmdPreRun,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultConfigDir := xdg.ConfigHome + "/" + config.APP_NAME + "/"
	defaultDataDir := xdg.DataHome + "/" + config.APP_NAME + "/"

	flags := rootCmd.PersistentFlags()
	flags.StringP(config.CONFIG_DIR, "c", defaultConfigDir, "config directory (env CWMINER_CONFIG_DIR)")
	flags.StringP(config.DATA_DIR, "d", defaultDataDir, "data directory (env CWMINER_DATA_DIR)")
	flags.StringP(config.LOG_LEVEL, "l", "info", "log level (trace, debug, info, warn, error, fatal, panic) (env CWMINER_LOG_LEVEL)")
	flags.BoolP(config.SAVE_CONFIG, "S", false, "save/update config file with current config parameters (env CWMINER_SAVE_CONFIG)")
	flags.String(config.MINER_IDENTITY, "solo-miner", "opaque miner identity, stored in the miner config (env CWMINER_MINER_IDENTITY)")
	flags.String(config.VERSION_NAME, "test-singleton", "chainweb version to mine against (env CWMINER_VERSION)")
}

func rootCmdPreRun(cmd *cobra.Command, args []string) error {
	logLevel := cmd.Flag(config.LOG_LEVEL).Value.String()
	log.SetGlobalLogger("", logLevel)

	configDir := cmd.Flag(config.CONFIG_DIR).Value.String()
	if envDir, ok := os.LookupEnv(config.ENV_PREFIX + "_CONFIG_DIR"); ok && !cmd.Flag(config.CONFIG_DIR).Changed {
		configDir = envDir
	}
	viper.SetConfigFile(configDir + config.CONFIG_FILE_NAME)
	viper.SetConfigType("yaml")

	config.InitConfig()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %s", err)
	}
	// Re-apply the level now that flag, environment and config file are merged.
	log.ConfigureLogger(log.WithLevel(viper.GetString(config.LOG_LEVEL)))

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return err
		}
	}

	if viper.GetBool(config.SAVE_CONFIG) {
		if err := config.SaveConfig(); err != nil {
			log.WithField("error", err).Error("error saving config file, skipping")
		} else {
			log.Debug("config file saved successfully")
		}
	}
	log.WithField("options", viper.AllSettings()).Debug("config options loaded")
	return nil
}
