package constants

const (
	APP_NAME = "chainweb-miner"
	// prefix used to read config parameters from environment variables
	ENV_PREFIX = "CWMINER"
	// config file name
	CONFIG_FILE_NAME = "config.yaml"
	// config file type
	CONFIG_FILE_TYPE = "yaml"
)
