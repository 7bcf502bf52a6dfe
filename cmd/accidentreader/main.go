package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/iafilius/HighwayAccidents/src/accidents"
	"github.com/iafilius/HighwayAccidents/src/aggregate"
	"github.com/iafilius/HighwayAccidents/src/applog"
	"github.com/iafilius/HighwayAccidents/src/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("accidentreader", flag.ContinueOnError)
	var file, cfgPath, days, county string
	var table bool
	fs.StringVar(&file, "file", "", "Path to accident.csv (overrides config data.file)")
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config")
	fs.StringVar(&county, "county", "", "County filter (overrides config data.county)")
	fs.StringVar(&days, "days", "", "Comma-separated days for the most-dangerous query (default: all)")
	fs.BoolVar(&table, "table", false, "Print the per-day highway × time-of-day counts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := applog.Configure("accidentreader", cfg.Log.Level); err != nil {
		return err
	}
	if file != "" {
		cfg.Data.File = file
	}
	if county != "" {
		cfg.Data.County = county
	}

	recs, st, err := accidents.LoadCSV(cfg.Data.File, cfg.LoaderOptions())
	if err != nil {
		return err
	}
	t := aggregate.Build(recs)
	fmt.Fprintf(out, "Rows: %d  kept: %d  dropped: %d\n", st.Rows, st.Kept, t.Dropped)
	fmt.Fprintf(out, "Days: %s\n", strings.Join(t.Days, ", "))

	totals, grand := t.HighwayTotals()
	fmt.Fprintln(out, "Accidents per highway:")
	for _, h := range totals {
		fmt.Fprintf(out, "  %-7s %d\n", h.Highway, h.Count)
	}
	fmt.Fprintf(out, "Total: %d\n", grand)

	if table {
		writeTables(out, t)
	}

	sel := t.Days
	if strings.TrimSpace(days) != "" {
		sel = nil
		for _, d := range strings.Split(days, ",") {
			name := accidents.NormalizeDay(d)
			if name == "" {
				return fmt.Errorf("unknown day %q", strings.TrimSpace(d))
			}
			if !slices.Contains(sel, name) {
				sel = append(sel, name)
			}
		}
	}
	set, n := t.MostDangerous(sel)
	if len(set) == 0 {
		fmt.Fprintln(out, "Most dangerous: no days selected")
		return nil
	}
	names := make([]string, len(set))
	for i, c := range set {
		names[i] = c.String()
	}
	fmt.Fprintf(out, "Most dangerous (%s): %s with %d accidents\n", strings.Join(sel, ", "), strings.Join(names, "; "), n)
	return nil
}

func writeTables(out io.Writer, t *aggregate.Tables) {
	for _, day := range t.Days {
		ct := t.Table(day)
		fmt.Fprintf(out, "\n%s\n", day)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprint(tw, "\t")
		for _, b := range aggregate.Buckets {
			fmt.Fprintf(tw, "%s\t", b)
		}
		fmt.Fprintln(tw)
		for _, h := range accidents.Highways {
			fmt.Fprintf(tw, "%s\t", h)
			for _, b := range aggregate.Buckets {
				fmt.Fprintf(tw, "%d\t", ct.Count(h, b))
			}
			fmt.Fprintln(tw)
		}
		tw.Flush()
	}
}
