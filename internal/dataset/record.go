package dataset

// Record is one row of the season file: a single player's counted output in
// a single round. TeamName is derived from TeamID at load time; an unmapped
// id leaves it empty without dropping the row.
type Record struct {
	PlayerName    string  `json:"playerName"`
	TeamID        int     `json:"teamId"`
	TeamName      string  `json:"teamName,omitempty"`
	PositionName  string  `json:"positionName"`
	RoundNumber   int     `json:"roundNumber"`
	Mins          float64 `json:"mins"`
	Runs          int     `json:"runs"`
	KickPressures int     `json:"kickPressures"`
	KicksDefused  int     `json:"kicksDefused"`
	Supports      int     `json:"supports"`
	Decoys        int     `json:"decoys"`
	Tackles       int     `json:"tackles"`
}

// Metric returns the named effort counter. The second result is false for
// anything outside the six effort metrics.
func (r Record) Metric(name string) (int, bool) {
	switch name {
	case MetricRuns:
		return r.Runs, true
	case MetricKickPressures:
		return r.KickPressures, true
	case MetricKicksDefused:
		return r.KicksDefused, true
	case MetricSupports:
		return r.Supports, true
	case MetricDecoys:
		return r.Decoys, true
	case MetricTackles:
		return r.Tackles, true
	}
	return 0, false
}

const (
	MetricRuns          = "runs"
	MetricKickPressures = "kickPressures"
	MetricKicksDefused  = "kicksDefused"
	MetricSupports      = "supports"
	MetricDecoys        = "decoys"
	MetricTackles       = "tackles"
)

// MetricNames lists the effort metrics in canonical column order.
func MetricNames() []string {
	return []string{
		MetricRuns,
		MetricKickPressures,
		MetricKicksDefused,
		MetricSupports,
		MetricDecoys,
		MetricTackles,
	}
}
