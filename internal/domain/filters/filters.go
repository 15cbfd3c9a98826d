package filters

import (
	"sort"

	"github.com/bb-analyst/EffortPlot/internal/dataset"
)

// Selection holds the three inclusion filters. An empty slice on any
// dimension means that dimension does not restrict.
type Selection struct {
	Positions []string `json:"positions"`
	Teams     []string `json:"teams"`
	Players   []string `json:"players"`
}

// Options is what the sidebar offers: positions and teams from the full
// dataset, players from the position/team-narrowed subset.
type Options struct {
	Positions []string `json:"positions"`
	Teams     []string `json:"teams"`
	Players   []string `json:"players"`
	Metrics   []string `json:"metrics"`
	Defaults  []string `json:"defaultMetrics"`
}

// Apply returns the records passing every dimension of the selection.
// Position and team narrow first, then players; the result is a fresh slice
// and the input is never mutated.
func Apply(records []dataset.Record, sel Selection) []dataset.Record {
	candidates := byPositionAndTeam(records, sel)
	if len(sel.Players) == 0 {
		return candidates
	}
	players := toSet(sel.Players)
	out := make([]dataset.Record, 0, len(candidates))
	for _, rec := range candidates {
		if players[rec.PlayerName] {
			out = append(out, rec)
		}
	}
	return out
}

// DeriveOptions builds the option lists for a selection. The player list is
// derived from the position/team-filtered subset so it never offers a name
// impossible under the active filters.
func DeriveOptions(records []dataset.Record, sel Selection) Options {
	candidates := byPositionAndTeam(records, sel)

	positions := make(map[string]bool)
	teams := make(map[string]bool)
	for _, rec := range records {
		positions[rec.PositionName] = true
		if rec.TeamName != "" {
			teams[rec.TeamName] = true
		}
	}
	players := make(map[string]bool)
	for _, rec := range candidates {
		players[rec.PlayerName] = true
	}

	return Options{
		Positions: sortedKeys(positions),
		Teams:     sortedKeys(teams),
		Players:   sortedKeys(players),
		Metrics:   dataset.MetricNames(),
		Defaults:  dataset.MetricNames(),
	}
}

func byPositionAndTeam(records []dataset.Record, sel Selection) []dataset.Record {
	positions := toSet(sel.Positions)
	teams := toSet(sel.Teams)

	out := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if len(positions) > 0 && !positions[rec.PositionName] {
			continue
		}
		if len(teams) > 0 && !teams[rec.TeamName] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
