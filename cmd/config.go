package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samzong/gwp/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gwp configuration",
		Long:  `Manage gwp configuration, including the LLM model and API credentials.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set a configuration value",
	}

	configSetModelCmd = &cobra.Command{
		Use:   "model [model-name]",
		Short: "Set the LLM model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := args[0]
			if !config.IsValidModel(model) {
				return fmt.Errorf("invalid model: %q", model)
			}

			viper.Set("model", model)
			if err := config.SaveConfig(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(outWriter(), "Model set to: %s\n", model)
			fmt.Fprintln(outWriter(), "Hint: any model name is accepted, suggested models are:")
			for _, m := range config.GetSuggestedModels() {
				fmt.Fprintf(outWriter(), "- %s\n", m)
			}
			return nil
		},
	}

	configSetAPIKeyCmd = &cobra.Command{
		Use:   "apikey [api-key]",
		Short: "Set the LLM API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("api_key", args[0])
			if err := config.SaveConfig(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintln(outWriter(), "API key saved")
			return nil
		},
	}

	configSetAPIBaseCmd = &cobra.Command{
		Use:   "apibase [base-url]",
		Short: "Set the LLM API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("api_base", args[0])
			if err := config.SaveConfig(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(outWriter(), "API base URL set to: %s\n", args[0])
			fmt.Fprintln(outWriter(), "Hint: leave empty to use the default OpenAI endpoint")
			return nil
		},
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}

			fmt.Fprintln(outWriter(), "Current configuration:")
			fmt.Fprintf(outWriter(), "Model: %s\n", cfg.Model)
			if cfg.APIKey != "" {
				fmt.Fprintln(outWriter(), "API key: ********")
			} else {
				fmt.Fprintln(outWriter(), "API key: <not set>")
			}
			if cfg.APIBase != "" {
				fmt.Fprintf(outWriter(), "API base URL: %s\n", cfg.APIBase)
			} else {
				fmt.Fprintln(outWriter(), "API base URL: <not set>")
			}
			return nil
		},
	}
)

func init() {
	configSetCmd.AddCommand(configSetModelCmd)
	configSetCmd.AddCommand(configSetAPIKeyCmd)
	configSetCmd.AddCommand(configSetAPIBaseCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}
