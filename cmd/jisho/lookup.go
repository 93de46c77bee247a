package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/jisho-backend/internal/app"
	"github.com/heartmarshall/jisho-backend/internal/config"
	"github.com/heartmarshall/jisho-backend/internal/domain"
)

type lookupOutput struct {
	Query    string         `json:"query"`
	Variants []string       `json:"variants"`
	Entries  []lookupRecord `json:"entries"`
}

type lookupRecord struct {
	Dictionary     string   `json:"dictionary"`
	Expression     string   `json:"expression"`
	Reading        string   `json:"reading"`
	Glossary       []string `json:"glossary"`
	Score          int      `json:"score"`
	DefinitionTags []string `json:"definition_tags,omitempty"`
	TermTags       []string `json:"term_tags,omitempty"`
}

func newLookupCmd() *cobra.Command {
	var (
		deconjugate    bool
		bilingualFirst bool
		disabled       []string
	)

	cmd := &cobra.Command{
		Use:   "lookup WORD",
		Short: "Look a word up and print the matching entries as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(cfg *config.Config, c *app.Container) error {
				settings := cfg.Lookup.Settings()
				if cmd.Flags().Changed("deconjugate") {
					settings.ShouldDeconjugate = deconjugate
				}
				if cmd.Flags().Changed("bilingual-first") {
					settings.BilingualFirst = bilingualFirst
				}
				if cmd.Flags().Changed("disable") {
					settings.DisabledDictionaries = domain.NewDictionarySet(disabled...)
				}

				ctx := cmd.Context()
				entries, err := c.Lookup.Lookup(ctx, args[0], settings)
				if err != nil {
					return err
				}

				out := lookupOutput{
					Query:    args[0],
					Variants: c.Lookup.Variants(args[0], settings),
					Entries:  make([]lookupRecord, 0, len(entries)),
				}
				for _, e := range entries {
					defTags, err := c.Tags.ResolveKnown(ctx, e.DefinitionTags)
					if err != nil {
						return err
					}
					termTags, err := c.Tags.ResolveKnown(ctx, e.TermTags)
					if err != nil {
						return err
					}
					out.Entries = append(out.Entries, lookupRecord{
						Dictionary:     e.DictionaryID,
						Expression:     e.Expression,
						Reading:        e.Reading,
						Glossary:       e.Glossary,
						Score:          e.Score,
						DefinitionTags: tagNames(defTags),
						TermTags:       tagNames(termTags),
					})
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}

	cmd.Flags().BoolVar(&deconjugate, "deconjugate", true, "search the dictionary forms of the word")
	cmd.Flags().BoolVar(&bilingualFirst, "bilingual-first", false, "reverse the result order")
	cmd.Flags().StringSliceVar(&disabled, "disable", nil, "dictionary IDs to exclude (comma-separated)")
	return cmd
}

func tagNames(tags []domain.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
