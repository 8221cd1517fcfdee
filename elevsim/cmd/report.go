package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/elevsim/datarecording"
	"github.com/sarchlab/elevsim/tracing"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	kind  string
	limit int
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}

	reportCmd := &cobra.Command{
		Use:   "report <db>",
		Short: "Print the trips recorded in a trace database.",
		Long: "Print the trips recorded in a trace database created with " +
			"`elevsim run --trace-db`. The .sqlite3 extension can be left out.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	reportCmd.Flags().StringVar(&opts.kind, "kind", "",
		"only show tasks of this kind")
	reportCmd.Flags().IntVar(&opts.limit, "limit", 0,
		"maximum number of tasks to show, 0 shows all")

	return reportCmd
}

func report(
	ctx context.Context,
	w io.Writer,
	db string,
	opts *reportOptions,
) error {
	if !strings.HasSuffix(db, ".sqlite3") {
		db += ".sqlite3"
	}

	reader, err := datarecording.NewReader(db)
	if err != nil {
		return fmt.Errorf("opening %s: %w", db, err)
	}
	defer reader.Close()

	reader.MapTable(tracing.TraceTableName, tracing.TaskTableEntry{})

	params := datarecording.QueryParams{
		OrderBy: "StartTime, EndTime",
		Limit:   opts.limit,
	}
	if opts.kind != "" {
		params.Where = "Kind = ?"
		params.Args = []any{opts.kind}
	}

	rows, total, err := reader.Query(ctx, tracing.TraceTableName, params)
	if err != nil {
		return fmt.Errorf("reading %s: %w", db, err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tWHERE\tKIND\tWHAT")

	var busy float64
	for _, row := range rows {
		t := row.(*tracing.TaskTableEntry)
		busy += t.EndTime - t.StartTime
		fmt.Fprintf(tw, "%.4f\t%.4f\t%s\t%s\t%s\n",
			t.StartTime, t.EndTime, t.Location, t.Kind, t.What)
	}

	err = tw.Flush()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d of %d tasks shown, %.4f s busy\n",
		len(rows), total, busy)

	return nil
}
