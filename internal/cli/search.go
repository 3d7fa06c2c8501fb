package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"reposcout/internal/config"
	"reposcout/internal/domain"
	"reposcout/internal/history"
	"reposcout/internal/ui/services/results"
)

type searchOptions struct {
	sort    string
	order   string
	page    int
	perPage int
}

func newSearchCommand() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Run one search and print the results",
		Long: `Run a single repository search and print the results as a table.

Without sort or paging flags the keyword is sent on its own and the API's
best-match order is used. Any of --sort, --order, --page or --per-page sends
a full query with defaults for the rest.`,
		Example: `  # Best-match search
  reposcout search bubbletea

  # Most forked first, second page of 30
  reposcout search bubbletea --sort forks --page 2 --per-page 30`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.query(cmd, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), GetConfig(cmd.Context()), q)
		},
	}

	cmd.Flags().StringVar(&opts.sort, "sort", string(domain.SortStars), "sort field (stars|forks)")
	cmd.Flags().StringVar(&opts.order, "order", string(domain.OrderDesc), "sort order (asc|desc)")
	cmd.Flags().IntVar(&opts.page, "page", domain.FirstPage, "page number")
	cmd.Flags().IntVar(&opts.perPage, "per-page", domain.DefaultPerPage, "results per page")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(domain.SortStars), string(domain.SortForks)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("order", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(domain.OrderAsc), string(domain.OrderDesc)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// query builds a keyword-only query unless a sort or paging flag was given
func (o *searchOptions) query(cmd *cobra.Command, keyword string) (domain.Query, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.Query{}, fmt.Errorf("keyword must not be empty")
	}

	f := cmd.Flags()
	if !f.Changed("sort") && !f.Changed("order") && !f.Changed("page") && !f.Changed("per-page") {
		return domain.NewQuery(keyword), nil
	}

	field, err := domain.ParseSortField(o.sort)
	if err != nil {
		return domain.Query{}, err
	}
	order, err := domain.ParseSortOrder(o.order)
	if err != nil {
		return domain.Query{}, err
	}
	if o.page < domain.FirstPage {
		return domain.Query{}, fmt.Errorf("page must be at least %d, got %d", domain.FirstPage, o.page)
	}
	if o.perPage < 1 || o.perPage > domain.MaxPerPage {
		return domain.Query{}, fmt.Errorf("per-page must be within 1..%d, got %d", domain.MaxPerPage, o.perPage)
	}
	return domain.NewSortedQuery(keyword, domain.SortSpec{Field: field, Order: order}, o.page, o.perPage), nil
}

func runSearch(ctx context.Context, w io.Writer, cfg *config.Config, q domain.Query) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	page, searchErr := client.SearchRepositories(ctx, q)
	recordSearch(cfg, q, page, searchErr)
	if searchErr != nil {
		return fmt.Errorf("search failed: %w", searchErr)
	}

	printResults(w, q, page)
	return nil
}

// recordSearch adds a one-shot search to the history. Failures only log.
func recordSearch(cfg *config.Config, q domain.Query, page domain.ResultPage, searchErr error) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("search history unavailable", "path", cfg.History.Path, "err", err)
		return
	}
	defer store.Close()

	entry := history.Entry{Query: q, TotalCount: page.TotalCount, Success: searchErr == nil}
	if searchErr != nil {
		entry.Message = results.Message(searchErr)
	}
	if _, err := store.Record(entry); err != nil {
		slog.Warn("failed to record search", "keyword", q.Keyword, "err", err)
	}
}

func printResults(w io.Writer, q domain.Query, page domain.ResultPage) {
	header := fmt.Sprintf("%s repositories for %q", humanize.Comma(int64(page.TotalCount)), q.Keyword)
	if q.Sorted() {
		header += fmt.Sprintf(" (%s, page %d, %d per page)", domain.SortSpec{Field: q.Sort, Order: q.Order}, q.Page, q.PerPage)
	}
	fmt.Fprintln(w, header)
	if len(page.Items) == 0 {
		return
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARS\tFORKS\tLANGUAGE\tDESCRIPTION")
	for _, r := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.FullName,
			humanize.Comma(int64(r.Stars)),
			humanize.Comma(int64(r.Forks)),
			dash(r.Language),
			truncate(r.Description, 60),
		)
	}
	_ = tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
