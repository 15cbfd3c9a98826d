package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bb-analyst/EffortPlot/internal/dataset"
	"github.com/bb-analyst/EffortPlot/internal/domain/efforts"
	"github.com/bb-analyst/EffortPlot/internal/domain/filters"
)

type staticSource struct {
	snap *dataset.Snapshot
	err  error
}

func (s staticSource) Snapshot(context.Context) (*dataset.Snapshot, error) {
	return s.snap, s.err
}

func testSnapshot() *dataset.Snapshot {
	return &dataset.Snapshot{
		ID:          uuid.New(),
		Fingerprint: "test",
		LoadedAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Records: []dataset.Record{
			{PlayerName: "James Tedesco", TeamName: "Sydney Roosters", PositionName: "Fullback", RoundNumber: 1, Mins: 80, Runs: 18, Tackles: 10},
			{PlayerName: "James Tedesco", TeamName: "Sydney Roosters", PositionName: "Fullback", RoundNumber: 2, Mins: 78, Runs: 16, Tackles: 12},
			{PlayerName: "Nathan Cleary", TeamName: "Penrith Panthers", PositionName: "Halfback", RoundNumber: 1, Mins: 80, Runs: 9, Tackles: 22},
		},
	}
}

func TestExploreDefaultsToAllMetrics(t *testing.T) {
	svc := NewService(staticSource{snap: testSnapshot()})
	view, err := svc.Explore(context.Background(), Query{})
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if len(view.Metrics) != 6 {
		t.Fatalf("expected default metric set, got %v", view.Metrics)
	}
	if len(view.Games) != 3 || len(view.Season) != 2 {
		t.Fatalf("unexpected view sizes: %d games, %d season rows", len(view.Games), len(view.Season))
	}
	if len(view.TopByTotal) != 2 {
		t.Fatalf("expected 2 leaderboard rows, got %d", len(view.TopByTotal))
	}
}

func TestExploreAppliesFiltersBeforeComposing(t *testing.T) {
	svc := NewService(staticSource{snap: testSnapshot()})
	view, err := svc.Explore(context.Background(), Query{
		Selection: filters.Selection{Teams: []string{"Sydney Roosters"}},
	})
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if len(view.Games) != 2 {
		t.Fatalf("expected 2 filtered games, got %d", len(view.Games))
	}
	if len(view.Baseline) != 1 || view.Baseline[0].GamesPlayed != 2 {
		t.Fatalf("unexpected baseline: %+v", view.Baseline)
	}
	// Option lists stay dataset-wide for positions and teams.
	if len(view.Options.Teams) != 2 {
		t.Fatalf("expected both teams offered, got %v", view.Options.Teams)
	}
	if len(view.Options.Players) != 1 {
		t.Fatalf("player options should honor the team filter, got %v", view.Options.Players)
	}
}

func TestExploreSearchNarrowsRowsNotLeaderboards(t *testing.T) {
	svc := NewService(staticSource{snap: testSnapshot()})
	view, err := svc.Explore(context.Background(), Query{Search: "cleary"})
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if len(view.Games) != 1 || view.Games[0].PlayerName != "Nathan Cleary" {
		t.Fatalf("unexpected search result: %+v", view.Games)
	}
	if len(view.TopByTotal) != 2 {
		t.Fatalf("leaderboards should stay unsearched, got %d rows", len(view.TopByTotal))
	}
}

func TestExploreEmptyMetricSelectionSurfacesValidationError(t *testing.T) {
	svc := NewService(staticSource{snap: testSnapshot()})
	_, err := svc.Explore(context.Background(), Query{Metrics: efforts.MetricSet{}})
	var validation *efforts.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestExplorePropagatesSourceError(t *testing.T) {
	wantErr := &dataset.LoadError{Path: "missing.csv", Err: errors.New("gone")}
	svc := NewService(staticSource{err: wantErr})
	_, err := svc.Explore(context.Background(), Query{})
	var loadErr *dataset.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}
