package branchstatus

import "strings"

const (
	defaultSortSpecificationValueConstant = "branch"
	defaultPullRequestLimitValueConstant  = 200
	configurationKeySeparatorConstant     = "."
	sortConfigurationKeyConstant          = "sort"
	limitConfigurationKeyConstant         = "limit"
	noColorConfigurationKeyConstant       = "no_color"
)

// CommandConfiguration captures configuration values for the branch report command.
type CommandConfiguration struct {
	Sort             string `mapstructure:"sort"`
	PullRequestLimit int    `mapstructure:"limit"`
	DisableColors    bool   `mapstructure:"no_color"`
}

// DefaultCommandConfiguration provides baseline configuration values for the branch report.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Sort:             defaultSortSpecificationValueConstant,
		PullRequestLimit: defaultPullRequestLimitValueConstant,
		DisableColors:    false,
	}
}

// DefaultConfigurationValues exposes baseline configuration entries keyed
// under the provided section prefix for registration with the loader.
func DefaultConfigurationValues(sectionPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		sectionPrefix + configurationKeySeparatorConstant + sortConfigurationKeyConstant:    defaults.Sort,
		sectionPrefix + configurationKeySeparatorConstant + limitConfigurationKeyConstant:   defaults.PullRequestLimit,
		sectionPrefix + configurationKeySeparatorConstant + noColorConfigurationKeyConstant: defaults.DisableColors,
	}
}

// Sanitize trims configuration values and falls back to the baseline defaults
// for blank or non-positive entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Sort = strings.TrimSpace(configuration.Sort)
	if len(sanitized.Sort) == 0 {
		sanitized.Sort = defaultSortSpecificationValueConstant
	}
	if sanitized.PullRequestLimit <= 0 {
		sanitized.PullRequestLimit = defaultPullRequestLimitValueConstant
	}

	return sanitized
}
