// Package config loads skillref settings from flags, SKILLREF_* environment
// variables and an optional config.yaml, with named profiles layered on top.
package config

import (
	"strings"

	"github.com/jingkaihe/skillref/pkg/telemetry"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultFallbackID is the workspace slug used when the workspace root
// yields no identity at all
const DefaultFallbackID = "workspace"

// Config holds the workspace context the resolver runs in
type Config struct {
	WorkspaceRoot string           `mapstructure:"workspace_root"`
	ProjectRoot   string           `mapstructure:"project_root"`
	WorkspaceSlug string           `mapstructure:"workspace_slug"`
	FallbackID    string           `mapstructure:"fallback_id"`
	LogLevel      string           `mapstructure:"log_level"`
	LogFormat     string           `mapstructure:"log_format"`
	Concurrency   int              `mapstructure:"concurrency"`
	Tracing       telemetry.Config `mapstructure:"tracing"`

	Profiles map[string]ProfileConfig `mapstructure:"profiles"`
}

// ProfileConfig is a named set of overrides, keyed like Config
type ProfileConfig map[string]any

// Init wires viper to the SKILLREF_ environment and the config file search
// path. A missing config file is not an error.
func Init() {
	viper.SetEnvPrefix("SKILLREF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillref")
	viper.AddConfigPath(".")

	SetDefaults()

	_ = viper.ReadInConfig()
}

// SetDefaults registers every key so that environment overrides are seen
// by Unmarshal
func SetDefaults() {
	viper.SetDefault("workspace_root", "")
	viper.SetDefault("project_root", "")
	viper.SetDefault("workspace_slug", "")
	viper.SetDefault("fallback_id", DefaultFallbackID)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "fmt")
	viper.SetDefault("concurrency", 8)
	viper.SetDefault("profile", "")
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.endpoint", "")
	viper.SetDefault("tracing.service_name", "skillref")
	viper.SetDefault("tracing.sampler", "always")
	viper.SetDefault("tracing.ratio", 1.0)
}

// GetConfigFromViper builds the effective configuration, applying the
// active profile if one is selected
func GetConfigFromViper() (Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if config.FallbackID == "" {
		config.FallbackID = DefaultFallbackID
	}

	profileName := getActiveProfile()
	if profileName == "" {
		return config, nil
	}

	profile, exists := config.Profiles[profileName]
	if !exists {
		return config, errors.Errorf("profile '%s' not found", profileName)
	}
	if err := applyProfile(&config, profile); err != nil {
		return config, err
	}

	return config, nil
}

func getActiveProfile() string {
	profile := viper.GetString("profile")
	if profile == "default" {
		return ""
	}
	return profile
}

func applyProfile(config *Config, profile ProfileConfig) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
		ZeroFields:       false, // keep base values the profile does not mention
	})
	if err != nil {
		return errors.Wrap(err, "failed to create profile decoder")
	}

	if err := decoder.Decode(map[string]any(profile)); err != nil {
		return errors.Wrap(err, "failed to apply profile configuration")
	}

	return nil
}
