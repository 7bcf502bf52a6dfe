package accidents

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iafilius/HighwayAccidents/src/applog"
)

var (
	// ErrMissingColumn is returned when a configured column is not in the header.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoRecords is returned when no row survives filtering.
	ErrNoRecords = errors.New("no matching accident records")
)

// Columns names the CSV columns used by the loader. A value is either a header
// name ("TWAY_ID") or a zero-based index written "#25". Empty State/County
// columns disable the corresponding filter.
type Columns struct {
	State   string
	County  string
	Highway string
	Day     string
	Hour    string
}

// DefaultColumns matches the FARS accident.csv header.
var DefaultColumns = Columns{
	State:   "STATENAME",
	County:  "COUNTYNAME",
	Highway: "TWAY_ID",
	Day:     "DAY_WEEKNAME",
	Hour:    "HOUR",
}

// Options controls row filtering.
type Options struct {
	Columns Columns
	// State and County are compared case-insensitively after trimming; empty matches all.
	State  string
	County string
	// ExactHighway disables route-code extraction and compares the trimmed cell as-is.
	ExactHighway bool
}

// Stats summarizes one load.
type Stats struct {
	Rows        int
	Kept        int
	WrongState  int
	WrongCounty int
	NotListed   int // highway outside the whitelist
	BadDay      int
	Malformed   int // row shorter than the referenced columns
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string, opts Options) ([]Record, Stats, error) {
	start := time.Now()
	defer applog.TimeTrack(start, "load "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()
	applog.Infof("[loader] reading accidents from %s (state=%q county=%q)", path, opts.State, opts.County)
	recs, st, err := ReadCSV(f, opts)
	if err != nil {
		return nil, st, fmt.Errorf("%s: %w", path, err)
	}
	return recs, st, nil
}

// ReadCSV parses a header-first CSV stream and returns the rows that pass the
// state, county and highway filters.
func ReadCSV(r io.Reader, opts Options) ([]Record, Stats, error) {
	var st Stats
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, st, ErrNoRecords
		}
		return nil, st, fmt.Errorf("read header: %w", err)
	}
	cols := opts.Columns
	if cols == (Columns{}) {
		cols = DefaultColumns
	}
	idx, err := resolveColumns(header, cols)
	if err != nil {
		return nil, st, err
	}

	var out []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, st, fmt.Errorf("read row %d: %w", st.Rows+1, err)
		}
		st.Rows++
		if !idx.fits(row) {
			st.Malformed++
			continue
		}
		if idx.state >= 0 && opts.State != "" && !strings.EqualFold(strings.TrimSpace(row[idx.state]), strings.TrimSpace(opts.State)) {
			st.WrongState++
			continue
		}
		if idx.county >= 0 && opts.County != "" && !strings.EqualFold(strings.TrimSpace(row[idx.county]), strings.TrimSpace(opts.County)) {
			st.WrongCounty++
			continue
		}
		hw := strings.TrimSpace(row[idx.highway])
		if !opts.ExactHighway {
			hw = NormalizeHighway(hw)
		}
		if HighwayIndex(hw) < 0 {
			st.NotListed++
			continue
		}
		day := NormalizeDay(row[idx.day])
		if day == "" {
			st.BadDay++
			applog.Debugf("[loader] row %d: unknown day %q", st.Rows, row[idx.day])
			continue
		}
		out = append(out, Record{Highway: hw, Day: day, Hour: strings.TrimSpace(row[idx.hour])})
	}
	st.Kept = len(out)
	applog.Infof("[loader] kept %d of %d rows (state=%d county=%d highway=%d day=%d malformed=%d dropped)",
		st.Kept, st.Rows, st.WrongState, st.WrongCounty, st.NotListed, st.BadDay, st.Malformed)
	if len(out) == 0 {
		return nil, st, ErrNoRecords
	}
	return out, st, nil
}

type columnIndex struct {
	state, county, highway, day, hour int
}

func (c columnIndex) fits(row []string) bool {
	for _, i := range []int{c.state, c.county, c.highway, c.day, c.hour} {
		if i >= len(row) {
			return false
		}
	}
	return true
}

func resolveColumns(header []string, cols Columns) (columnIndex, error) {
	var idx columnIndex
	var err error
	if idx.state, err = resolveColumn(header, cols.State, true); err != nil {
		return idx, err
	}
	if idx.county, err = resolveColumn(header, cols.County, true); err != nil {
		return idx, err
	}
	if idx.highway, err = resolveColumn(header, cols.Highway, false); err != nil {
		return idx, err
	}
	if idx.day, err = resolveColumn(header, cols.Day, false); err != nil {
		return idx, err
	}
	if idx.hour, err = resolveColumn(header, cols.Hour, false); err != nil {
		return idx, err
	}
	return idx, nil
}

// resolveColumn returns -1 for an empty optional reference.
func resolveColumn(header []string, ref string, optional bool) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if optional {
			return -1, nil
		}
		return -1, fmt.Errorf("%w: empty column reference", ErrMissingColumn)
	}
	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 0 || n >= len(header) {
			return -1, fmt.Errorf("%w: index %s out of range (header has %d columns)", ErrMissingColumn, ref, len(header))
		}
		return n, nil
	}
	for i, h := range header {
		// header cells may carry a UTF-8 BOM or padding
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrMissingColumn, ref)
}
