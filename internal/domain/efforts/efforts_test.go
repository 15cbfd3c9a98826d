package efforts

import (
	"errors"
	"math"
	"testing"

	"github.com/bb-analyst/EffortPlot/internal/dataset"
)

func TestComposeSumsOnlySelectedMetrics(t *testing.T) {
	records := []dataset.Record{
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", Mins: 80, Runs: 5, Tackles: 30},
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", Mins: 70, Runs: 3, Tackles: 25},
	}
	set, err := NewMetricSet([]string{dataset.MetricRuns})
	if err != nil {
		t.Fatalf("metric set: %v", err)
	}

	games, season, err := Compose(records, set)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if games[0].Efforts != 5 || games[1].Efforts != 3 {
		t.Fatalf("tackles leaked into efforts: %+v", games)
	}
	if len(season) != 1 {
		t.Fatalf("expected one season row, got %d", len(season))
	}
	agg := season[0]
	if agg.TotalMins != 150 || agg.GamesPlayed != 2 || agg.Efforts != 8 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
	if agg.EffortsPerMin == nil {
		t.Fatalf("expected efficiency ratio for played minutes")
	}
	if got := *agg.EffortsPerMin; got != 0.0533 {
		t.Fatalf("expected 0.0533, got %.6f", got)
	}
}

func TestComposeEmptyMetricSetIsValidationError(t *testing.T) {
	_, _, err := Compose([]dataset.Record{{PlayerName: "A"}}, MetricSet{})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNewMetricSetRejectsUnknownAndEmpty(t *testing.T) {
	if _, err := NewMetricSet([]string{"metres"}); err == nil {
		t.Fatalf("expected error for unknown metric")
	}
	if _, err := NewMetricSet(nil); err == nil {
		t.Fatalf("expected error for empty selection")
	}
}

func TestNewMetricSetDeduplicatesKeepingOrder(t *testing.T) {
	set, err := NewMetricSet([]string{dataset.MetricTackles, dataset.MetricRuns, dataset.MetricTackles})
	if err != nil {
		t.Fatalf("metric set: %v", err)
	}
	if len(set) != 2 || set[0] != dataset.MetricTackles || set[1] != dataset.MetricRuns {
		t.Fatalf("unexpected set: %v", set)
	}
}

func TestComposeFractionalMinutes(t *testing.T) {
	records := []dataset.Record{
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", Mins: 65.5, Runs: 10},
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", Mins: 34.5, Runs: 10},
	}
	set, err := NewMetricSet([]string{dataset.MetricRuns})
	if err != nil {
		t.Fatalf("metric set: %v", err)
	}
	_, season, err := Compose(records, set)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	agg := season[0]
	if agg.TotalMins != 100 {
		t.Fatalf("expected 100 total minutes, got %v", agg.TotalMins)
	}
	if agg.EffortsPerMin == nil || *agg.EffortsPerMin != 0.2 {
		t.Fatalf("unexpected ratio: %v", agg.EffortsPerMin)
	}
}

func TestComposeZeroMinutesHasNoRatio(t *testing.T) {
	records := []dataset.Record{
		{PlayerName: "Bench Only", TeamName: "T", PositionName: "Prop", Mins: 0, Runs: 2},
	}
	_, season, err := Compose(records, DefaultMetrics())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if season[0].EffortsPerMin != nil {
		t.Fatalf("expected nil ratio for zero minutes, got %v", *season[0].EffortsPerMin)
	}
}

func TestComposeAggregationConsistency(t *testing.T) {
	records := []dataset.Record{
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", Mins: 60, Runs: 5, Supports: 2, Tackles: 20},
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", Mins: 55, Runs: 7, Supports: 1, Tackles: 25},
		{PlayerName: "B", TeamName: "T", PositionName: "Wing", Mins: 80, Runs: 12, Supports: 4, Tackles: 8},
	}
	games, season, err := Compose(records, DefaultMetrics())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	perPlayer := make(map[string]int)
	for _, g := range games {
		perPlayer[g.PlayerName] += g.Efforts
	}
	for _, agg := range season {
		if perPlayer[agg.PlayerName] != agg.Efforts {
			t.Fatalf("aggregate mismatch for %s: %d vs %d", agg.PlayerName, agg.Efforts, perPlayer[agg.PlayerName])
		}
	}
}

func TestSeasonBaselineCountsGames(t *testing.T) {
	records := []dataset.Record{
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", RoundNumber: 1, Mins: 60},
		{PlayerName: "A", TeamName: "T", PositionName: "Prop", RoundNumber: 2, Mins: 55},
		{PlayerName: "B", TeamName: "T", PositionName: "Wing", RoundNumber: 1, Mins: 80},
	}
	baseline := SeasonBaseline(records)
	if len(baseline) != 2 {
		t.Fatalf("expected 2 players, got %d", len(baseline))
	}
	if baseline[0].PlayerName != "A" || baseline[0].GamesPlayed != 2 || baseline[0].TotalMins != 115 {
		t.Fatalf("unexpected baseline: %+v", baseline[0])
	}
}

func TestEffortsPerMinGuardsZero(t *testing.T) {
	if !math.IsNaN(EffortsPerMin(10, 0)) {
		t.Fatalf("expected NaN for zero minutes")
	}
	if got := EffortsPerMin(8, 150); math.Abs(got-8.0/150.0) > 1e-12 {
		t.Fatalf("unexpected ratio: %.6f", got)
	}
}

func TestEffortsPerMinMonotoneInMinutes(t *testing.T) {
	prev := EffortsPerMin(40, 50)
	for mins := 51; mins <= 200; mins++ {
		cur := EffortsPerMin(40, float64(mins))
		if cur > prev {
			t.Fatalf("ratio increased at %d minutes: %.6f > %.6f", mins, cur, prev)
		}
		prev = cur
	}
}
