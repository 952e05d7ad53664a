package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samzong/gwp/internal/config"
	"github.com/samzong/gwp/internal/llm"
	"github.com/samzong/gwp/internal/workflow"
)

var (
	cfgFile   string
	dryRun    bool
	verbose   bool
	configErr error
	rootCtx   context.Context

	rootCmd = &cobra.Command{
		Use:   "gwp",
		Short: "gwp - Git Workspace Push",
		Long: `gwp commits and pushes every repository in a multi-repository workspace.

For each nested repository under packages/ with pending changes, gwp stages
everything, generates a commit message from the diff using an LLM, commits,
and pushes to origin/main. Nested repositories are processed concurrently.
The root repository is processed last, after its submodule references have
been fast-forwarded, so the root commit captures the refreshed references.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkspace(cmd)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// SetContext sets the context used for command execution.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

func Execute() error {
	if rootCtx != nil {
		return rootCmd.ExecuteContext(rootCtx)
	}
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is ./.gwp.yaml, then $HOME/.gwp.yaml)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Report pending changes without staging, committing, or pushing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false,
		"Show detailed git command output")

	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func runWorkspace(cmd *cobra.Command) error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	flow := workflow.New(llm.New(cfg), workflow.Options{
		DryRun:    dryRun,
		Verbose:   verbose,
		OutWriter: outWriter(),
		ErrWriter: errWriter(),
	})

	outcomes, err := flow.Run(cmd.Context())
	if err != nil {
		return err
	}

	committed, skipped, failed := workflow.Count(outcomes)
	fmt.Fprintf(outWriter(), "\nWorkspace processing complete: %d committed, %d skipped, %d failed\n",
		committed, skipped, failed)

	// Individual repository failures are reported but do not change the
	// exit code; only fatal workspace errors do.
	for _, outcome := range outcomes {
		if outcome.Status == workflow.StatusFailed {
			fmt.Fprintf(errWriter(), "  %s: %v\n", outcome.Repo, outcome.Err)
		}
	}

	return nil
}
