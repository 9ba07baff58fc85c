package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

func (x *Client) SaveIncident(ctx context.Context, incident *model.Incident) error {
	const q = `
		INSERT INTO incidents (id, repo_id, title, state, severity, service_name, started_at, resolved_at, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			repo_id = EXCLUDED.repo_id,
			title = EXCLUDED.title,
			state = EXCLUDED.state,
			severity = EXCLUDED.severity,
			service_name = EXCLUDED.service_name,
			started_at = EXCLUDED.started_at,
			resolved_at = EXCLUDED.resolved_at,
			duration_seconds = EXCLUDED.duration_seconds`

	if _, err := x.db.ExecContext(ctx, q,
		incident.ID, incident.RepoID, incident.Title, incident.State, incident.Severity,
		incident.ServiceName, incident.StartedAt, incident.ResolvedAt, incident.DurationSeconds,
	); err != nil {
		return goerr.Wrap(err, "failed to save incident", goerr.V("id", incident.ID))
	}

	return nil
}

func (x *Client) ListIncidents(ctx context.Context, query *interfaces.IncidentQuery) ([]*model.Incident, error) {
	q := `
		SELECT id, repo_id, title, state, severity, service_name, started_at, resolved_at, duration_seconds
		FROM incidents WHERE TRUE`
	var args []any

	if query.ServiceName != "" {
		args = append(args, query.ServiceName)
		q += ` AND service_name = $` + strconv.Itoa(len(args))
	}
	if query.State != "" {
		args = append(args, query.State)
		q += ` AND state = $` + strconv.Itoa(len(args))
	}
	if query.Start != nil {
		args = append(args, *query.Start)
		q += ` AND started_at >= $` + strconv.Itoa(len(args))
	}
	if query.End != nil {
		args = append(args, *query.End)
		q += ` AND started_at <= $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY started_at ASC`

	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	defer safe.Close(rows)

	var incidents []*model.Incident
	for rows.Next() {
		var i model.Incident
		if err := rows.Scan(
			&i.ID, &i.RepoID, &i.Title, &i.State, &i.Severity,
			&i.ServiceName, &i.StartedAt, &i.ResolvedAt, &i.DurationSeconds,
		); err != nil {
			return nil, goerr.Wrap(err, "failed to scan incident")
		}
		incidents = append(incidents, &i)
	}

	return incidents, rows.Err()
}

func (x *Client) CountIncidents(ctx context.Context, serviceName string, start, end time.Time) (int64, error) {
	q := `SELECT COUNT(*) FROM incidents WHERE started_at BETWEEN $1 AND $2`
	args := []any{start, end}
	if serviceName != "" {
		args = append(args, serviceName)
		q += ` AND service_name = $3`
	}

	var count int64
	if err := x.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "failed to count incidents")
	}

	return count, nil
}
