package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/jisho-backend/internal/app"
	"github.com/heartmarshall/jisho-backend/internal/config"
	"github.com/heartmarshall/jisho-backend/internal/deinflect"
)

func newDeinflectCmd() *cobra.Command {
	var (
		rulesPath string
		maxDepth  int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "deinflect WORD",
		Short: "Print the candidate dictionary forms of a word",
		Long:  "Print the candidate dictionary forms of a word. Needs no database.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := app.LoadRules(config.DeinflectConfig{RulesPath: rulesPath})
			if err != nil {
				return err
			}

			ds := deinflect.DeinflectDepth(strings.TrimSpace(args[0]), rules, maxDepth)

			if asJSON {
				type row struct {
					Term  string   `json:"term"`
					Rules []string `json:"rules"`
					Tags  []string `json:"tags"`
				}
				out := make([]row, len(ds))
				for i, d := range ds {
					out[i] = row{Term: d.Term, Rules: d.Rules, Tags: d.Tag.Names()}
				}
				return printJSON(cmd.OutOrStdout(), out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TERM\tTAGS\tRULES")
			for _, d := range ds {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Term, d.Tag, joinRules(d.Rules))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "rule table YAML (default: built-in)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", deinflect.MaxDepth, "maximum number of rules in a chain")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// joinRules renders a deinflection chain, outermost reason first.
func joinRules(rules []string) string {
	return strings.Join(rules, " → ")
}
