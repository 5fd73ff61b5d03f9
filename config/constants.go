package config

const (
	APP_NAME = "chainweb-miner"
	// prefix used to read config parameters from environment variables
	ENV_PREFIX = "CWMINER"
	// default config file name
	CONFIG_FILE_NAME = "config.yaml"

	// constants used to handle config parameters in the viper instance.
	// see cmd/chainweb-miner/root.go for documentation on each parameter.
	CONFIG_DIR   = "config-dir"
	DATA_DIR     = "data-dir"
	LOG_LEVEL    = "log-level"
	SAVE_CONFIG  = "save-config"
	MINER_IDENTITY = "miner-identity"
	VERSION_NAME = "version"
)
