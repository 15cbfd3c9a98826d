package projections

import (
	"context"
	"time"

	"github.com/bb-analyst/EffortPlot/internal/dataset"
	"github.com/bb-analyst/EffortPlot/internal/domain/efforts"
	"github.com/bb-analyst/EffortPlot/internal/domain/filters"
	"github.com/bb-analyst/EffortPlot/internal/domain/rankings"
)

type Source interface {
	Snapshot(ctx context.Context) (*dataset.Snapshot, error)
}

// Query is one dashboard interaction: the active filters, the metric
// selection, and an optional name search.
type Query struct {
	Selection filters.Selection
	Metrics   efforts.MetricSet
	Search    string
}

// View is everything the presentation layer needs for a single render.
type View struct {
	SnapshotID      string                      `json:"snapshotId"`
	LoadedAt        time.Time                   `json:"loadedAt"`
	Options         filters.Options             `json:"options"`
	Selection       filters.Selection           `json:"selection"`
	Metrics         efforts.MetricSet           `json:"metrics"`
	Games           []efforts.GameEffort        `json:"games"`
	Season          []efforts.SeasonEffort      `json:"season"`
	Baseline        []efforts.BaselineAggregate `json:"baseline"`
	TopByTotal      []rankings.RankedEffort     `json:"topByTotal"`
	TopByEfficiency []rankings.RankedEffort     `json:"topByEfficiency"`
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Explore runs the full filter -> compose -> rank pipeline against the
// current snapshot. Every stage is a pure transform; nothing is retained
// between calls.
func (s *Service) Explore(ctx context.Context, q Query) (*View, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	metrics := q.Metrics
	if metrics == nil {
		metrics = efforts.DefaultMetrics()
	}

	subset := filters.Apply(snap.Records, q.Selection)
	games, season, err := efforts.Compose(subset, metrics)
	if err != nil {
		return nil, err
	}

	view := &View{
		SnapshotID:      snap.ID.String(),
		LoadedAt:        snap.LoadedAt,
		Options:         filters.DeriveOptions(snap.Records, q.Selection),
		Selection:       q.Selection,
		Metrics:         metrics,
		Games:           rankings.SearchGames(games, q.Search),
		Season:          rankings.SearchSeason(season, q.Search),
		Baseline:        efforts.SeasonBaseline(subset),
		TopByTotal:      rankings.TopByTotal(season, rankings.LeaderboardSize),
		TopByEfficiency: rankings.TopByEfficiency(season, rankings.QualifyingMins, rankings.LeaderboardSize),
	}
	return view, nil
}
