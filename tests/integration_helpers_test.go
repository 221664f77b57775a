package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationBinaryNameConstant         = "branchview"
	integrationBuildSubcommandConstant    = "build"
	integrationBuildOutputFlagConstant    = "-o"
	integrationGoExecutableConstant       = "go"
	integrationCurrentPackagePathConstant = "."
	integrationPathVariableNameConstant   = "PATH"
	integrationPathSeparatorConstant      = string(os.PathListSeparator)
	integrationEnvironmentPairSeparator   = "="
)

func buildIntegrationBinary(testInstance *testing.T, repositoryRoot string) string {
	testInstance.Helper()

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)
	buildCommand := exec.Command(integrationGoExecutableConstant, integrationBuildSubcommandConstant, integrationBuildOutputFlagConstant, binaryPath, integrationCurrentPackagePathConstant)
	buildCommand.Dir = repositoryRoot

	outputBytes, buildError := buildCommand.CombinedOutput()
	require.NoError(testInstance, buildError, string(outputBytes))

	return binaryPath
}

func runBinaryIntegrationCommand(
	testInstance *testing.T,
	binaryPath string,
	workingDirectory string,
	environmentOverrides map[string]string,
	timeout time.Duration,
	arguments []string,
) (string, error) {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = mergeEnvironment(environmentOverrides)

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func mergeEnvironment(environmentOverrides map[string]string) []string {
	merged := append([]string{}, os.Environ()...)
	for overrideKey, overrideValue := range environmentOverrides {
		merged = append(merged, overrideKey+integrationEnvironmentPairSeparator+overrideValue)
	}
	return merged
}

// prependToPathVariable builds a PATH value that resolves executables from the
// provided directory before the inherited locations.
func prependToPathVariable(extraDirectory string) string {
	existingPath := os.Getenv(integrationPathVariableNameConstant)
	if len(existingPath) == 0 {
		return extraDirectory
	}
	return extraDirectory + integrationPathSeparatorConstant + existingPath
}

func writeExecutableScript(testInstance *testing.T, directory string, name string, content string) {
	testInstance.Helper()

	scriptPath := filepath.Join(directory, name)
	writeError := os.WriteFile(scriptPath, []byte(content), 0o755)
	require.NoError(testInstance, writeError)
}

func requireLineContainingAll(testInstance *testing.T, outputText string, fragments ...string) {
	testInstance.Helper()

	for _, outputLine := range strings.Split(outputText, "\n") {
		lineMatches := true
		for _, fragment := range fragments {
			if !strings.Contains(outputLine, fragment) {
				lineMatches = false
				break
			}
		}
		if lineMatches {
			return
		}
	}
	testInstance.Fatalf("no output line contains all of %v\n%s", fragments, outputText)
}
