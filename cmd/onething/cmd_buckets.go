package main

import (
	"fmt"
	"strings"
	"time"

	"onething/internal/datefmt"
	"onething/internal/logging"
	"onething/internal/tasks"
	"onething/internal/translator"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var renderMarkdown bool

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List the buckets and their capacities",
	Args:  cobra.NoArgs,
	RunE:  listBuckets,
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Print the sample board as markdown",
	Long: `Seeds a board with the sample tasks and prints it as markdown,
ordered the way the board orders each bucket.

Use --render to format the markdown for the terminal.`,
	Args: cobra.NoArgs,
	RunE: printSamples,
}

func init() {
	samplesCmd.Flags().BoolVar(&renderMarkdown, "render", false, "Render the markdown for the terminal")
}

func listBuckets(cmd *cobra.Command, args []string) error {
	tr, err := translator.New(cfg.UI.Language, logging.Get(logging.CategoryUI))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, b := range tasks.DefaultBuckets() {
		limit := "unlimited"
		if n, ok := b.Capacity(); ok {
			limit = fmt.Sprintf("max %d", n)
		}
		fmt.Fprintf(out, "%-16s %-10s %s\n", b.ID, limit, tr.BucketTitle(b))
		fmt.Fprintf(out, "%-16s %-10s %s\n", "", "", tr.BucketDescription(b))
	}
	return nil
}

func printSamples(cmd *cobra.Command, args []string) error {
	now := time.Now()
	store, err := newStore(true, now)
	if err != nil {
		return err
	}
	tr, err := translator.New(cfg.UI.Language, logging.Get(logging.CategoryUI))
	if err != nil {
		return err
	}

	md := boardMarkdown(store, tr, now)
	if renderMarkdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(cfg.UI.WordWrap),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		if md, err = r.Render(md); err != nil {
			return fmt.Errorf("failed to render board: %w", err)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), md)
	return nil
}

// boardMarkdown renders every bucket in board order.
func boardMarkdown(store *tasks.Store, tr *translator.Translator, now time.Time) string {
	var sb strings.Builder
	labels := tr.DateLabels()

	if focus, ok := store.OneThing(); ok {
		fmt.Fprintf(&sb, "# %s\n\n**%s**\n\n", tr.T("focusHeading"), focus.Title)
	}

	for _, b := range store.Buckets() {
		count := fmt.Sprintf("%d", store.Count(b.ID))
		if limit, ok := b.Capacity(); ok {
			count = fmt.Sprintf("%d/%d", store.Count(b.ID), limit)
		}
		fmt.Fprintf(&sb, "## %s (%s)\n\n_%s_\n\n", tr.BucketTitle(b), count, tr.BucketDescription(b))

		list := store.BucketTasks(b.ID)
		if len(list) == 0 {
			sb.WriteString(tr.T("emptyBucket") + "\n\n")
			continue
		}
		for _, t := range list {
			parts := []string{"**" + t.Title + "**"}
			if t.Deadline != nil {
				status := datefmt.Classify(*t.Deadline, now)
				parts = append(parts, fmt.Sprintf("%s (%s)", datefmt.FormatDate(*t.Deadline, now, labels), tr.Status(status)))
			}
			if t.TimeEstimate != nil {
				parts = append(parts, datefmt.FormatTimeEstimate(*t.TimeEstimate))
			}
			sb.WriteString("- " + strings.Join(parts, " · ") + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
