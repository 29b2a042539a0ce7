package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"triage-backend/internal/triage"
)

func newKeywordsCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Print the keyword and condition tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, v)
			if err != nil {
				return err
			}
			tables := triage.Tables()
			if format == outputText {
				return writeTablesText(cmd.OutOrStdout(), tables)
			}
			return writeStructured(cmd.OutOrStdout(), format, tables)
		},
	}
	cmd.Flags().StringP("output", "o", outputText, "output format: text, json, yaml")
	return cmd
}

func writeTablesText(w io.Writer, t triage.KeywordTables) error {
	sections := []struct {
		title  string
		groups []triage.KeywordGroup
	}{
		{"CRITICAL", t.Critical},
		{"URGENT", t.Urgent},
		{"NON-URGENT", t.NonUrgent},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s\n", s.title); err != nil {
			return err
		}
		for _, g := range s.groups {
			if _, err := fmt.Fprintf(w, "  %-14s %s\n", g.Tag, listOrNone(g.Phrases)); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "CRITICAL CONDITIONS\n  %s\n", listOrNone(t.CriticalConditions)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "URGENT CONDITIONS\n  %s\n", listOrNone(t.UrgentConditions))
	return err
}
