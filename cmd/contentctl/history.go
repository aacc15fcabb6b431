package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"contentportal/internal/content"
	"contentportal/internal/domain"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the most recent content records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := runtime.Content.ListRecent(cmd.Context(), flagLimit)
		if err != nil {
			return err
		}
		if flagJSON {
			if items == nil {
				items = []domain.ContentRecord{}
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"items": items})
		}
		return writeHistory(cmd.OutOrStdout(), items)
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", content.DefaultHistoryLimit, "number of records to show (1-50)")
}

var kindTitle = cases.Title(language.Und)

// writeHistory renders records as an aligned table, newest first.
func writeHistory(w io.Writer, items []domain.ContentRecord) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No records yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tCREATED\tPROMPT")
	for _, it := range items {
		status := string(it.Status)
		if vs, ok := it.Result[domain.ResultKeyVideoStatus].(string); ok && it.Kind == domain.ContentKindVideo {
			status += " (" + vs + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			kindTitle.String(string(it.Kind)),
			status,
			it.CreatedAt.UTC().Format(time.RFC3339),
			truncate(it.Prompt, 48),
		)
	}
	return tw.Flush()
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
