package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lotsizing/casegen/pkg/infrastructure/catalog"
)

// RunsCommand lists recorded generation runs from the catalog.
type RunsCommand struct {
	dir   string
	limit int
	out   io.Writer
}

// NewRunsCommand creates a runs command reading the catalog under dir.
func NewRunsCommand(dir string, limit int, out io.Writer) *RunsCommand {
	return &RunsCommand{dir: dir, limit: limit, out: out}
}

// Execute prints the most recent runs, newest first.
func (cmd *RunsCommand) Execute(ctx context.Context) error {
	cat, err := catalog.Open(cmd.dir)
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.List(ctx, cmd.limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.out, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tMODE\tSEED\tSIZE (UxIxT)\tROWS\tFILE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%dx%dx%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Mode, r.Seed,
			r.Nodes, r.Items, r.Periods, r.DemandRows, r.CaseFile)
	}
	return tw.Flush()
}
