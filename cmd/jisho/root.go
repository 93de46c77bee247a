package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/jisho-backend/internal/app"
	"github.com/heartmarshall/jisho-backend/internal/config"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "jisho",
		Short:         "Japanese dictionary lookup",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				return os.Setenv("CONFIG_PATH", configPath)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH)")

	root.AddCommand(
		newLookupCmd(),
		newDeinflectCmd(),
		newDictionariesCmd(),
		newMigrateCmd(),
	)
	return root
}

// withContainer loads the configuration, connects and runs fn.
func withContainer(cmd *cobra.Command, fn func(cfg *config.Config, c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	c, err := app.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(cfg, c)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
