package main

import (
	"fmt"
	"strings"

	"github.com/iafilius/HighwayAccidents/src/accidents"
	"github.com/iafilius/HighwayAccidents/src/aggregate"
	"github.com/iafilius/HighwayAccidents/src/applog"
	"github.com/iafilius/HighwayAccidents/src/config"
	"github.com/iafilius/HighwayAccidents/src/dashboard"
)

// openDashboard loads path with the configured filters and starts a session
// whose scene is w×h pixels.
func openDashboard(cfg *config.Config, path string, w, h int) (*dashboard.Dashboard, accidents.Stats, error) {
	recs, st, err := accidents.LoadCSV(path, cfg.LoaderOptions())
	if err != nil {
		return nil, st, err
	}
	tables := aggregate.Build(recs)
	applog.Infof("[viewer] %d rows, %d kept, %d days, max per bar %d, %d dropped",
		st.Rows, st.Kept, len(tables.Days), tables.GlobalMax, tables.Dropped)
	return dashboard.New(tables, cfg.SceneOptions(w, h)), st, nil
}

// parseCombo reads "I-5,Evening" (or "I-5 - Evening") into a combination.
func parseCombo(s string) (aggregate.Combo, error) {
	sep := ","
	if !strings.Contains(s, sep) {
		sep = " - "
	}
	parts := strings.SplitN(s, sep, 2)
	if len(parts) != 2 {
		return aggregate.Combo{}, fmt.Errorf("highlight %q: want HIGHWAY,BUCKET", s)
	}
	b, ok := aggregate.ParseBucket(strings.TrimSpace(parts[1]))
	if !ok {
		return aggregate.Combo{}, fmt.Errorf("highlight %q: unknown time bucket %q", s, strings.TrimSpace(parts[1]))
	}
	c := aggregate.Combo{Highway: strings.TrimSpace(parts[0]), Bucket: b}
	if !c.Valid() {
		return aggregate.Combo{}, fmt.Errorf("highlight %q: unknown highway %q", s, c.Highway)
	}
	return c, nil
}
