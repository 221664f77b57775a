package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	flagutils "github.com/temirov/branchview/internal/utils/flags"
	pathutils "github.com/temirov/branchview/internal/utils/path"
)

const (
	initializationFlagNameConstant             = "init"
	initializationFlagUsageDescriptionConstant = "Write the default configuration file and exit."
	forceFlagNameConstant                      = "force"
	forceFlagUsageConstant                     = "Overwrite an existing configuration file during --init."
	initializationScopeLocalConstant           = "local"
	initializationScopeUserConstant            = "user"
	userConfigurationDirectoryConstant         = "~/.branchview"
	configurationFileNameConstant              = "config.yaml"
	configurationFilePermissionsConstant       = 0o644
	configurationDirectoryPermissionsConstant  = 0o755
	unknownInitializationScopeTemplateConstant = "unknown --init scope: %q (use: %s)"
	configurationExistsTemplateConstant        = "configuration file %s already exists (use --force to overwrite)"
	directoryCreationErrorTemplateConstant     = "unable to create configuration directory: %w"
	configurationWriteErrorTemplateConstant    = "unable to write configuration file: %w"
	configurationWrittenMessageConstant        = "configuration file written"
	configurationPathFieldNameConstant         = "path"
)

var supportedInitializationScopes = []string{initializationScopeLocalConstant, initializationScopeUserConstant}

func (application *Application) registerInitializationFlags(command *cobra.Command) {
	command.Flags().StringVar(
		&application.initializationTarget,
		initializationFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(initializationScopeLocalConstant, supportedInitializationScopes, initializationFlagUsageDescriptionConstant),
	)
	initializationFlag := command.Flags().Lookup(initializationFlagNameConstant)
	if initializationFlag != nil {
		initializationFlag.NoOptDefVal = initializationScopeLocalConstant
	}

	command.Flags().BoolVar(&application.forceOverwriteFlag, forceFlagNameConstant, false, forceFlagUsageConstant)
}

// initializeConfigurationFile materializes the embedded default configuration
// at the requested scope: the working directory for local, ~/.branchview for user.
func (application *Application) initializeConfigurationFile() error {
	targetPath, pathError := application.resolveInitializationPath()
	if pathError != nil {
		return pathError
	}

	if _, statError := os.Stat(targetPath); statError == nil && !application.forceOverwriteFlag {
		return fmt.Errorf(configurationExistsTemplateConstant, targetPath)
	}

	targetDirectory := filepath.Dir(targetPath)
	if directoryError := os.MkdirAll(targetDirectory, configurationDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(directoryCreationErrorTemplateConstant, directoryError)
	}

	embeddedConfiguration, _ := EmbeddedDefaultConfiguration()
	if writeError := os.WriteFile(targetPath, embeddedConfiguration, configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, writeError)
	}

	application.logger.Info(
		configurationWrittenMessageConstant,
		zap.String(configurationPathFieldNameConstant, targetPath),
	)

	return nil
}

func (application *Application) resolveInitializationPath() (string, error) {
	requestedScope := strings.ToLower(strings.TrimSpace(application.initializationTarget))
	if len(requestedScope) == 0 {
		requestedScope = initializationScopeLocalConstant
	}

	switch requestedScope {
	case initializationScopeLocalConstant:
		return configurationFileNameConstant, nil
	case initializationScopeUserConstant:
		userDirectory := pathutils.NewHomeExpander().Expand(userConfigurationDirectoryConstant)
		return filepath.Join(userDirectory, configurationFileNameConstant), nil
	default:
		return "", fmt.Errorf(unknownInitializationScopeTemplateConstant, requestedScope, strings.Join(supportedInitializationScopes, ", "))
	}
}
