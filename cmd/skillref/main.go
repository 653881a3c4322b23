package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jingkaihe/skillref/pkg/config"
	"github.com/jingkaihe/skillref/pkg/logger"
	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/jingkaihe/skillref/pkg/telemetry"
	"github.com/jingkaihe/skillref/pkg/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	runtimeConfig   config.Config
	tracingShutdown = func(context.Context) error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "skillref",
	Short: "Resolve skill references to fully qualified plugin:skill names",
	Long: `skillref resolves bare or mis-qualified skill references against the
project tier (<project>/.agents/skills/<name>) and the workspace tier
(<workspace>/skills/<name>). Project skills are qualified as .agents:<name>,
workspace skills with the workspace slug.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupRuntime(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return tracingShutdown(cmd.Context())
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func init() {
	config.Init()

	flags := rootCmd.PersistentFlags()
	flags.StringP("workspace", "w", "", "Workspace root holding skills/<name>")
	flags.StringP("project", "p", "", "Project root holding .agents/skills/<name>")
	flags.String("slug", "", "Workspace slug (derived from the workspace root when empty)")
	flags.String("fallback", config.DefaultFallbackID, "Slug used when the workspace root yields no identity")
	flags.String("profile", "", "Configuration profile to apply")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "fmt", "Log format (fmt, text, json)")
	flags.BoolP("quiet", "q", false, "Suppress informational output")

	bindConfigFlags(flags)
}

// configFlags maps persistent flags to their configuration keys
var configFlags = map[string]string{
	"workspace":  "workspace_root",
	"project":    "project_root",
	"slug":       "workspace_slug",
	"fallback":   "fallback_id",
	"profile":    "profile",
	"log-level":  "log_level",
	"log-format": "log_format",
}

func bindConfigFlags(flags *pflag.FlagSet) {
	for flag, key := range configFlags {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func setupRuntime(cmd *cobra.Command) error {
	cfg, err := config.GetConfigFromViper()
	if err != nil {
		return err
	}

	if err := logger.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	logger.SetLogFormat(cfg.LogFormat)

	if quiet, err := cmd.Flags().GetBool("quiet"); err == nil {
		presenter.SetQuiet(quiet)
	}

	cfg.Tracing.ServiceVersion = version.Version
	shutdown, err := telemetry.InitTracer(cmd.Context(), cfg.Tracing)
	if err != nil {
		return errors.Wrap(err, "failed to initialize tracing")
	}

	tracingShutdown = shutdown
	runtimeConfig = cfg
	return nil
}

// newResolver builds the resolver for the effective configuration
func newResolver(ctx context.Context) *skills.Resolver {
	return skills.Initialize(ctx, runtimeConfig)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
