package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	defaultLogLevelValueConstant        = "info"
	defaultLogFormatValueConstant       = "structured"
	consoleLogFormatValueConstant       = "console"
	debugLogLevelValueConstant          = "debug"
	defaultSortValueConstant            = "branch"
	defaultPullRequestLimitConstant     = 200
	existingConfigurationErrorFragment  = "already exists"
	unknownInitializationScopeConstant  = "remote"
	unknownScopeErrorFragmentConstant   = "unknown --init scope"
	placeholderConfigurationContentYAML = "common:\n  log_level: warn\n"
)

func TestApplicationConfigurationDefaultsApplied(t *testing.T) {
	chdirForTest(t, t.TempDir())

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, defaultLogLevelValueConstant, application.configuration.Common.LogLevel)
	require.Equal(t, defaultLogFormatValueConstant, application.configuration.Common.LogFormat)
	require.Equal(t, defaultSortValueConstant, application.configuration.Report.Sort)
	require.Equal(t, defaultPullRequestLimitConstant, application.configuration.Report.PullRequestLimit)
	require.False(t, application.configuration.Report.DisableColors)
}

func TestApplicationLogFlagsOverrideConfiguration(t *testing.T) {
	chdirForTest(t, t.TempDir())

	application := NewApplication()
	require.NoError(t, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, debugLogLevelValueConstant))
	require.NoError(t, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, consoleLogFormatValueConstant))

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, debugLogLevelValueConstant, application.configuration.Common.LogLevel)
	require.Equal(t, consoleLogFormatValueConstant, application.configuration.Common.LogFormat)
	require.True(t, application.humanReadableLoggingEnabled())
}

func TestApplicationConfigurationFileOverridesDefaults(t *testing.T) {
	workingDirectory := t.TempDir()
	chdirForTest(t, workingDirectory)

	configurationPath := filepath.Join(workingDirectory, configurationFileNameConstant)
	require.NoError(t, os.WriteFile(configurationPath, []byte(placeholderConfigurationContentYAML), 0o600))

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "warn", application.configuration.Common.LogLevel)
	require.Equal(t, defaultLogFormatValueConstant, application.configuration.Common.LogFormat)
}

func TestInitializeConfigurationFileLifecycle(t *testing.T) {
	chdirForTest(t, t.TempDir())

	application := NewApplication()

	require.NoError(t, application.initializeConfigurationFile())

	writtenContent, readError := os.ReadFile(configurationFileNameConstant)
	require.NoError(t, readError)
	embeddedContent, _ := EmbeddedDefaultConfiguration()
	require.Equal(t, embeddedContent, writtenContent)

	overwriteError := application.initializeConfigurationFile()
	require.Error(t, overwriteError)
	require.Contains(t, overwriteError.Error(), existingConfigurationErrorFragment)

	application.forceOverwriteFlag = true
	require.NoError(t, application.initializeConfigurationFile())
}

func TestInitializeConfigurationFileUserScope(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	chdirForTest(t, t.TempDir())

	application := NewApplication()
	application.initializationTarget = initializationScopeUserConstant

	require.NoError(t, application.initializeConfigurationFile())

	expectedPath := filepath.Join(homeDirectory, ".branchview", configurationFileNameConstant)
	_, statError := os.Stat(expectedPath)
	require.NoError(t, statError)
}

func TestResolveInitializationPathRejectsUnknownScope(t *testing.T) {
	application := NewApplication()
	application.initializationTarget = unknownInitializationScopeConstant

	_, pathError := application.resolveInitializationPath()
	require.Error(t, pathError)
	require.Contains(t, pathError.Error(), unknownScopeErrorFragmentConstant)
}

func chdirForTest(t *testing.T, directory string) {
	t.Helper()
	previousDirectory, workingDirectoryError := os.Getwd()
	require.NoError(t, workingDirectoryError)
	require.NoError(t, os.Chdir(directory))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(previousDirectory))
	})
}
