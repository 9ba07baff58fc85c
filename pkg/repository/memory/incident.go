package memory

import (
	"context"
	"sort"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
)

func (r *metricsRepository) SaveIncident(ctx context.Context, incident *model.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.incidents[incident.ID] = copyIncident(incident)

	return nil
}

func (r *metricsRepository) ListIncidents(ctx context.Context, query *interfaces.IncidentQuery) ([]*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Incident
	for _, i := range r.incidents {
		if query.ServiceName != "" && i.ServiceName != query.ServiceName {
			continue
		}
		if query.State != "" && i.State != query.State {
			continue
		}
		if query.Start != nil && i.StartedAt.Before(*query.Start) {
			continue
		}
		if query.End != nil && i.StartedAt.After(*query.End) {
			continue
		}
		out = append(out, copyIncident(i))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })

	return out, nil
}

func (r *metricsRepository) CountIncidents(ctx context.Context, serviceName string, start, end time.Time) (int64, error) {
	incidents, err := r.ListIncidents(ctx, &interfaces.IncidentQuery{
		ServiceName: serviceName,
		Start:       &start,
		End:         &end,
	})
	if err != nil {
		return 0, err
	}
	return int64(len(incidents)), nil
}
