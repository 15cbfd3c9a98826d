package rankings

import (
	"sort"
	"strings"

	"github.com/bb-analyst/EffortPlot/internal/domain/efforts"
)

// QualifyingMins is the minimum season minutes for the efficiency
// leaderboard, keeping small samples off the board.
const QualifyingMins = 80

// LeaderboardSize caps both leaderboards.
const LeaderboardSize = 10

// RankedEffort is one leaderboard row.
type RankedEffort struct {
	Rank int `json:"rank"`
	efforts.SeasonEffort
}

// TopByTotal ranks season aggregates by total efforts, descending, keeping
// the first limit rows. Ties keep their input order.
func TopByTotal(season []efforts.SeasonEffort, limit int) []RankedEffort {
	sorted := append([]efforts.SeasonEffort(nil), season...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Efforts > sorted[j].Efforts
	})
	return rank(sorted, limit)
}

// TopByEfficiency ranks qualifying season aggregates by efforts per minute,
// descending. Rows below minMins or without a defined ratio never appear.
func TopByEfficiency(season []efforts.SeasonEffort, minMins, limit int) []RankedEffort {
	qualified := make([]efforts.SeasonEffort, 0, len(season))
	for _, agg := range season {
		if agg.TotalMins < float64(minMins) || agg.EffortsPerMin == nil {
			continue
		}
		qualified = append(qualified, agg)
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return *qualified[i].EffortsPerMin > *qualified[j].EffortsPerMin
	})
	return rank(qualified, limit)
}

// SearchSeason returns every season aggregate whose player name contains the
// term, case-insensitively, in input order.
func SearchSeason(season []efforts.SeasonEffort, term string) []efforts.SeasonEffort {
	if term == "" {
		return season
	}
	needle := strings.ToLower(term)
	out := make([]efforts.SeasonEffort, 0, len(season))
	for _, agg := range season {
		if strings.Contains(strings.ToLower(agg.PlayerName), needle) {
			out = append(out, agg)
		}
	}
	return out
}

// SearchGames is SearchSeason over the per-game rows.
func SearchGames(games []efforts.GameEffort, term string) []efforts.GameEffort {
	if term == "" {
		return games
	}
	needle := strings.ToLower(term)
	out := make([]efforts.GameEffort, 0, len(games))
	for _, game := range games {
		if strings.Contains(strings.ToLower(game.PlayerName), needle) {
			out = append(out, game)
		}
	}
	return out
}

func rank(sorted []efforts.SeasonEffort, limit int) []RankedEffort {
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]RankedEffort, 0, len(sorted))
	for i, agg := range sorted {
		out = append(out, RankedEffort{Rank: i + 1, SeasonEffort: agg})
	}
	return out
}
