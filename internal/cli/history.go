package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"reposcout/internal/domain"
	"reposcout/internal/history"
)

func newHistoryCommand() *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches",
		Example: `  reposcout history --limit 5
  reposcout history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				n, err := store.Clear()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d searches\n", n)
				return nil
			}

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			printHistory(out, entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of searches to show")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all recorded searches")

	return cmd
}

func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKEYWORD\tSORT\tPAGE\tRESULT")
	for _, e := range entries {
		sort, page := "best match", "-"
		if e.Query.Sorted() {
			sort = domain.SortSpec{Field: e.Query.Sort, Order: e.Query.Order}.String()
			page = fmt.Sprintf("%d×%d", e.Query.Page, e.Query.PerPage)
		}
		result := humanize.Comma(int64(e.TotalCount)) + " found"
		if !e.Success {
			result = "failed: " + e.Message
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", humanize.Time(e.SearchedAt), e.Query.Keyword, sort, page, result)
	}
	_ = tw.Flush()
}
