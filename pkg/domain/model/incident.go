package model

import (
	"time"

	"github.com/k-morita/deployscope/pkg/domain/types"
)

// Incident mirrors an incident from the incident-management source.
// ResolvedAt and DurationSeconds are populated only once the incident is
// resolved; the ingestion contract updates them in place as the incident
// evolves.
type Incident struct {
	ID              types.IncidentID
	RepoID          types.RepoID
	Title           string
	State           types.IncidentState
	Severity        types.IncidentSeverity
	ServiceName     string
	StartedAt       time.Time
	ResolvedAt      *time.Time
	DurationSeconds *int64
}

// Resolved reports whether the incident counts toward MTTR.
func (x *Incident) Resolved() bool {
	return x.State == types.IncidentResolved && x.DurationSeconds != nil
}

// DurationHours returns the resolution duration in hours, or 0 when the
// incident has no recorded duration.
func (x *Incident) DurationHours() float64 {
	if x.DurationSeconds == nil {
		return 0
	}
	return float64(*x.DurationSeconds) / 3600.0
}
