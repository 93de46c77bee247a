package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/jisho-backend/internal/app"
	"github.com/heartmarshall/jisho-backend/internal/config"
)

func newDictionariesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dictionaries",
		Aliases: []string{"dict"},
		Short:   "Manage imported dictionaries",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List imported dictionaries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withContainer(cmd, func(_ *config.Config, c *app.Container) error {
					summaries, err := c.Dictionaries.List(cmd.Context())
					if err != nil {
						return err
					}

					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tTITLE\tREVISION\tBILINGUAL\tENTRIES\tIMPORTED")
					for _, s := range summaries {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\t%s\n",
							s.ID, s.Title, s.Revision, s.Bilingual, s.Entries, s.ImportedAt.Format(time.DateTime))
					}
					return tw.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a dictionary with its entries and tags",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withContainer(cmd, func(_ *config.Config, c *app.Container) error {
					if err := c.Dictionaries.Delete(cmd.Context(), args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
					return nil
				})
			},
		},
	)
	return cmd
}
