package efforts

import (
	"fmt"
	"math"
	"sort"

	"github.com/bb-analyst/EffortPlot/internal/dataset"
)

// ValidationError is a recoverable user-input problem: the caller should
// surface it as a warning and render nothing rather than stale output.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// MetricSet is the ordered set of effort metrics selected for composition.
type MetricSet []string

// DefaultMetrics selects all six effort metrics in canonical order.
func DefaultMetrics() MetricSet {
	return MetricSet(dataset.MetricNames())
}

// NewMetricSet validates and de-duplicates names, preserving first-seen
// order. An unknown name or an empty result is a ValidationError.
func NewMetricSet(names []string) (MetricSet, error) {
	seen := make(map[string]bool, len(names))
	set := make(MetricSet, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		if _, ok := (dataset.Record{}).Metric(name); !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("unknown effort metric %q", name)}
		}
		seen[name] = true
		set = append(set, name)
	}
	if len(set) == 0 {
		return nil, &ValidationError{Msg: "select at least one statistic to analyze"}
	}
	return set, nil
}

// GameEffort is a round record with the efforts value composed from the
// selected metrics.
type GameEffort struct {
	dataset.Record
	Efforts int `json:"efforts"`
}

// SeasonEffort is the per-player season rollup for a metric selection.
// EffortsPerMin is nil when the player logged no minutes.
type SeasonEffort struct {
	PlayerName    string   `json:"playerName"`
	TeamName      string   `json:"teamName,omitempty"`
	PositionName  string   `json:"positionName"`
	GamesPlayed   int      `json:"gamesPlayed"`
	TotalMins     float64  `json:"totalMins"`
	Efforts       int      `json:"efforts"`
	EffortsPerMin *float64 `json:"effortsPerMin,omitempty"`
}

// BaselineAggregate is the metric-independent season rollup.
type BaselineAggregate struct {
	PlayerName   string  `json:"playerName"`
	TeamName     string  `json:"teamName,omitempty"`
	PositionName string  `json:"positionName"`
	GamesPlayed  int     `json:"gamesPlayed"`
	TotalMins    float64 `json:"totalMins"`
}

type playerKey struct {
	player   string
	team     string
	position string
}

// Compose derives per-game efforts and the per-player season rollup for the
// selected metrics. Metrics outside the set contribute nothing even though
// every record carries them.
func Compose(records []dataset.Record, set MetricSet) ([]GameEffort, []SeasonEffort, error) {
	if len(set) == 0 {
		return nil, nil, &ValidationError{Msg: "select at least one statistic to analyze"}
	}

	games := make([]GameEffort, 0, len(records))
	totals := make(map[playerKey]*SeasonEffort)
	order := make([]playerKey, 0)

	for _, rec := range records {
		sum := 0
		for _, name := range set {
			v, ok := rec.Metric(name)
			if !ok {
				return nil, nil, &ValidationError{Msg: fmt.Sprintf("unknown effort metric %q", name)}
			}
			sum += v
		}
		games = append(games, GameEffort{Record: rec, Efforts: sum})

		key := playerKey{player: rec.PlayerName, team: rec.TeamName, position: rec.PositionName}
		agg, ok := totals[key]
		if !ok {
			agg = &SeasonEffort{
				PlayerName:   rec.PlayerName,
				TeamName:     rec.TeamName,
				PositionName: rec.PositionName,
			}
			totals[key] = agg
			order = append(order, key)
		}
		agg.GamesPlayed++
		agg.TotalMins += rec.Mins
		agg.Efforts += sum
	}

	season := make([]SeasonEffort, 0, len(order))
	for _, key := range order {
		agg := totals[key]
		if agg.TotalMins > 0 {
			ratio := Round(float64(agg.Efforts) / agg.TotalMins)
			agg.EffortsPerMin = &ratio
		}
		season = append(season, *agg)
	}
	sortSeason(season)
	return games, season, nil
}

// SeasonBaseline rolls up minutes and appearances per player, independent of
// any metric selection.
func SeasonBaseline(records []dataset.Record) []BaselineAggregate {
	totals := make(map[playerKey]*BaselineAggregate)
	order := make([]playerKey, 0)

	for _, rec := range records {
		key := playerKey{player: rec.PlayerName, team: rec.TeamName, position: rec.PositionName}
		agg, ok := totals[key]
		if !ok {
			agg = &BaselineAggregate{
				PlayerName:   rec.PlayerName,
				TeamName:     rec.TeamName,
				PositionName: rec.PositionName,
			}
			totals[key] = agg
			order = append(order, key)
		}
		agg.GamesPlayed++
		agg.TotalMins += rec.Mins
	}

	out := make([]BaselineAggregate, 0, len(order))
	for _, key := range order {
		out = append(out, *totals[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PlayerName != out[j].PlayerName {
			return out[i].PlayerName < out[j].PlayerName
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out
}

// EffortsPerMin computes the efficiency ratio, NaN when no minutes were
// played.
func EffortsPerMin(effortsTotal int, totalMins float64) float64 {
	if totalMins <= 0 {
		return math.NaN()
	}
	return float64(effortsTotal) / totalMins
}

func Round(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func sortSeason(season []SeasonEffort) {
	sort.SliceStable(season, func(i, j int) bool {
		if season[i].PlayerName != season[j].PlayerName {
			return season[i].PlayerName < season[j].PlayerName
		}
		return season[i].TeamName < season[j].TeamName
	})
}
