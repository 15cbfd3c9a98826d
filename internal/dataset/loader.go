package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// LoadError marks the input file as unusable: missing, unreadable, or missing
// a required column. It is fatal to the session.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var requiredColumns = []string{
	"playerName", "teamId", "positionName", "roundNumber", "mins",
	MetricRuns, MetricKickPressures, MetricKicksDefused,
	MetricSupports, MetricDecoys, MetricTackles,
}

// Load parses the season file and enriches each row with its team name.
// Extra columns are ignored; rows with an unmapped team id are kept with an
// empty team name.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: errors.Wrap(err, "open")}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Err: errors.Wrap(err, "read header")}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, &LoadError{Path: path, Err: errors.Errorf("missing required column %q", name)}
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Err: errors.Wrap(err, "read rows")}
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := parseRow(row, index)
		if err != nil {
			return nil, &LoadError{Path: path, Err: errors.Wrapf(err, "row %d", i+2)}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (Record, error) {
	cell := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	num := func(name string) (int, error) {
		v, err := strconv.Atoi(cell(name))
		if err != nil {
			return 0, errors.Wrapf(err, "column %q", name)
		}
		return v, nil
	}
	// Minutes can be fractional in the source data; the effort counters
	// are whole counts.
	mins := func() (float64, error) {
		v, err := strconv.ParseFloat(cell("mins"), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "column %q", "mins")
		}
		return v, nil
	}

	rec := Record{
		PlayerName:   cell("playerName"),
		PositionName: cell("positionName"),
	}

	var err error
	if rec.TeamID, err = num("teamId"); err != nil {
		return Record{}, err
	}
	if rec.RoundNumber, err = num("roundNumber"); err != nil {
		return Record{}, err
	}
	if rec.Mins, err = mins(); err != nil {
		return Record{}, err
	}
	if rec.Runs, err = num(MetricRuns); err != nil {
		return Record{}, err
	}
	if rec.KickPressures, err = num(MetricKickPressures); err != nil {
		return Record{}, err
	}
	if rec.KicksDefused, err = num(MetricKicksDefused); err != nil {
		return Record{}, err
	}
	if rec.Supports, err = num(MetricSupports); err != nil {
		return Record{}, err
	}
	if rec.Decoys, err = num(MetricDecoys); err != nil {
		return Record{}, err
	}
	if rec.Tackles, err = num(MetricTackles); err != nil {
		return Record{}, err
	}

	if name, ok := TeamName(rec.TeamID); ok {
		rec.TeamName = name
	}
	return rec, nil
}
