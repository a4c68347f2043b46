package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	bigctx "github.com/db47h/bigfmt/context"
)

var (
	batchMsgpack bool
	batchJobs    int
)

func init() {
	batchCmd.Flags().BoolVar(&batchMsgpack, "msgpack", false, "write results as msgpack instead of a table")
	batchCmd.Flags().IntVar(&batchJobs, "jobs", 0, "number of cases rendered in parallel (0: GOMAXPROCS)")
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE.toml",
	Short: "Render the [[case]] entries of a TOML file",
	Long: `batch renders every [[case]] of FILE concurrently with the [printer]
settings of FILE, overridden by the command line flags. It fails if a case
does not render or if its output differs from its want key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		s.apply(cfg.Printer)
		if err := s.applyFlags(cmd); err != nil {
			return err
		}
		results, err := runBatch(cmd.Context(), s, cfg.Cases, batchJobs)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if batchMsgpack {
			if err := msgpack.NewEncoder(out).Encode(results); err != nil {
				return err
			}
		} else {
			writeTable(out, results)
		}
		if failed := countFailed(results); failed > 0 {
			return fmt.Errorf("%d of %d case(s) failed", failed, len(results))
		}
		return nil
	},
}

// A caseResult is the outcome of one batch case.
type caseResult struct {
	Name   string `msgpack:"name"`
	Format string `msgpack:"format"`
	Output string `msgpack:"output"`
	Count  int    `msgpack:"count"`
	Error  string `msgpack:"error,omitempty"`
	Want   string `msgpack:"want,omitempty"`
	OK     bool   `msgpack:"ok"`
}

// runBatch renders cases on at most jobs goroutines and returns their results
// in input order. Case failures are reported in the results; the returned
// error is only set if ctx is cancelled.
func runBatch(ctx context.Context, s *settings, cases []caseConfig, jobs int) ([]caseResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]caseResult, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(cases))))
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runCase(s, i, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runCase(s *settings, i int, c caseConfig) caseResult {
	r := caseResult{Name: c.Name, Format: c.Format}
	if r.Name == "" {
		r.Name = fmt.Sprintf("case %d", i+1)
	}
	format := s.text(c.Format)
	b, err := buildArgs(s, format, c.Args)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	p := bigctx.New(s.printer.Mode).
		SetSeparator(s.printer.Separator).
		SetMaxFixedExp(s.printer.MaxFixedExp)
	r.Output = p.Sprintf(format, b.args...)
	r.Count = len(r.Output)
	if err := p.Err(); err != nil {
		r.Error = err.Error()
		r.Count = -1
		return r
	}
	r.OK = true
	if c.Want != nil {
		r.Want = *c.Want
		r.OK = r.Output == r.Want
	}
	return r
}

func countFailed(results []caseResult) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}

// writeTable writes results as aligned columns: name, status and output.
func writeTable(w io.Writer, results []caseResult) {
	width := 0
	for _, r := range results {
		width = max(width, runewidth.StringWidth(r.Name))
	}
	for _, r := range results {
		name := runewidth.FillRight(r.Name, width)
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s  %s  %s\n", name, errColor.Sprint("ERR "), r.Error)
		case !r.OK:
			fmt.Fprintf(w, "%s  %s  %q, want %q\n", name, errColor.Sprint("FAIL"), r.Output, r.Want)
		default:
			fmt.Fprintf(w, "%s  %s  %q\n", name, okColor.Sprint("ok  "), r.Output)
		}
	}
}
