package config

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testXDGConfigLoading tests the loading of the config file from the XDG
// config home and verifies values are correctly set in viper. Nested
// within TestCobraFlagConfigLoading.
func testXDGConfigLoading(t *testing.T) {
	mockConfigPath := "/tmp/xdg_config_home/"
	tempFile := createMockXDGConfigFile(t, mockConfigPath)
	defer tempFile.Close()
	defer os.RemoveAll(mockConfigPath)

	_, err := tempFile.WriteString(LOG_LEVEL + " : " + "debug\n")
	require.NoError(t, err)

	viper.Reset()
	viper.SetConfigFile(tempFile.Name())

	InitConfig()

	assert.Equal(t, "debug", viper.GetString(LOG_LEVEL))
}

// TestUpdateConfigFile verifies that the config file is saved or updated
// with the current config parameters.
func TestUpdateConfigFile(t *testing.T) {
	mockConfigPath := "/tmp/xdg_config_home/"
	tempFile := createMockXDGConfigFile(t, mockConfigPath)
	defer tempFile.Close()
	defer os.RemoveAll(mockConfigPath)

	_, err := tempFile.WriteString(LOG_LEVEL + " : " + "debug\n")
	require.NoError(t, err)

	viper.Reset()
	viper.SetConfigFile(tempFile.Name())

	err = os.Setenv("CWMINER_MINER_IDENTITY", "solo-miner-1")
	require.NoError(t, err)
	defer os.Unsetenv("CWMINER_MINER_IDENTITY")

	InitConfig()
	err = SaveConfig()
	require.NoError(t, err)

	err = viper.ReadInConfig()
	require.NoError(t, err)
	assert.Equal(t, "solo-miner-1", viper.GetString(MINER_IDENTITY))

	backupFile, err := os.Stat(mockConfigPath + CONFIG_FILE_NAME + ".bak")
	assert.False(t, os.IsNotExist(err))
	assert.Equal(t, CONFIG_FILE_NAME+".bak", backupFile.Name())
}

// testEnvironmentVariableConfigLoading verifies the expected order of
// precedence: environment variable overrides config file.
func testEnvironmentVariableConfigLoading(t *testing.T) {
	testXDGConfigLoading(t)

	err := os.Setenv("CWMINER_LOG_LEVEL", "error")
	require.NoError(t, err)

	assert.Equal(t, "error", viper.GetString(LOG_LEVEL))
}

// TestCobraFlagConfigLoading verifies the full order of precedence: cobra
// flag overrides environment variable overrides config file.
func TestCobraFlagConfigLoading(t *testing.T) {
	testXDGConfigLoading(t)
	assert.Equal(t, "debug", viper.GetString(LOG_LEVEL))

	testEnvironmentVariableConfigLoading(t)
	assert.Equal(t, "error", viper.GetString(LOG_LEVEL))

	rootCmd := &cobra.Command{}
	rootCmd.PersistentFlags().StringP(LOG_LEVEL, "l", "warn", "log level (trace, debug, info, warn, error, fatal, panic)")

	err := rootCmd.PersistentFlags().Set(LOG_LEVEL, "trace")
	require.NoError(t, err)
	viper.BindPFlags(rootCmd.PersistentFlags())

	assert.Equal(t, "trace", viper.GetString(LOG_LEVEL))

	err = os.Unsetenv("CWMINER_LOG_LEVEL")
	require.NoError(t, err)
}

func createMockXDGConfigFile(t *testing.T, dir string) *os.File {
	t.Helper()
	err := os.MkdirAll(dir, 0755)
	require.NoError(t, err)
	tmpFile, err := os.Create(dir + CONFIG_FILE_NAME)
	require.NoError(t, err)
	return tmpFile
}
