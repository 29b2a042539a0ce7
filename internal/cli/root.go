package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"triage-backend/internal/shared/telemetry"
)

const envPrefix = "TRIAGE"

// NewRootCommand builds the triage command tree around its own viper instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "triage",
		Short: "Rule-based emergency triage scorer",
		Long: `triage scores a chief complaint, optional vitals and patient age
against the emergency keyword tables and prints a red, yellow or green priority.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			return telemetry.Init(v.GetString("log_level"), "console", cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	v.SetDefault("output", outputText)

	root.AddCommand(newScoreCommand(v))
	root.AddCommand(newKeywordsCommand(v))
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func readConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

// outputFormat prefers an explicit --output over the configured default.
func outputFormat(cmd *cobra.Command, v *viper.Viper) (string, error) {
	format := v.GetString("output")
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		format = f.Value.String()
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case outputText, outputJSON, outputYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}
