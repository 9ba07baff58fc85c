package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/k-morita/deployscope/pkg/utils/safe"
	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
)

const deploymentColumns = `id, repo_id, sha, environment, service_name, created_at, updated_at, lead_time_processed`

func scanDeployment(row interface{ Scan(...any) error }) (*model.Deployment, error) {
	var d model.Deployment
	if err := row.Scan(
		&d.ID, &d.RepoID, &d.SHA, &d.Environment, &d.ServiceName,
		&d.CreatedAt, &d.UpdatedAt, &d.LeadTimeProcessed,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (x *Client) SaveDeployment(ctx context.Context, deployment *model.Deployment) error {
	// lead_time_processed is intentionally absent from the update set: the
	// flag only moves forward, through CompleteAttribution
	const q = `
		INSERT INTO deployments (id, repo_id, sha, environment, service_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			repo_id = EXCLUDED.repo_id,
			sha = EXCLUDED.sha,
			environment = EXCLUDED.environment,
			service_name = EXCLUDED.service_name,
			updated_at = EXCLUDED.updated_at`

	if _, err := x.db.ExecContext(ctx, q,
		deployment.ID, deployment.RepoID, deployment.SHA, deployment.Environment,
		deployment.ServiceName, deployment.CreatedAt, deployment.UpdatedAt,
	); err != nil {
		return goerr.Wrap(err, "failed to save deployment", goerr.V("id", deployment.ID))
	}

	return nil
}

func (x *Client) GetDeployment(ctx context.Context, id types.DeploymentID) (*model.Deployment, error) {
	d, err := scanDeployment(x.db.QueryRowContext(ctx,
		`SELECT `+deploymentColumns+` FROM deployments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "deployment not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get deployment")
	}

	return d, nil
}

func (x *Client) queryDeployments(ctx context.Context, q string, args ...any) ([]*model.Deployment, error) {
	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query deployments")
	}
	defer safe.Close(rows)

	var out []*model.Deployment
	for rows.Next() {
		d, err := scanDeployment(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan deployment")
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (x *Client) ListUnprocessedDeployments(ctx context.Context, env types.Environment) ([]*model.Deployment, error) {
	return x.queryDeployments(ctx, `
		SELECT `+deploymentColumns+` FROM deployments
		WHERE environment = $1 AND NOT lead_time_processed
		ORDER BY created_at ASC`, env)
}

func (x *Client) FindPreviousDeployment(ctx context.Context, repoID types.RepoID, env types.Environment, before time.Time) (*model.Deployment, error) {
	d, err := scanDeployment(x.db.QueryRowContext(ctx, `
		SELECT `+deploymentColumns+` FROM deployments
		WHERE repo_id = $1 AND environment = $2 AND created_at < $3
		ORDER BY created_at DESC LIMIT 1`, repoID, env, before))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "no previous deployment",
			goerr.V("repoID", repoID),
			goerr.V("before", before),
		)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find previous deployment")
	}

	return d, nil
}

func (x *Client) ListDeployments(ctx context.Context, env types.Environment, start, end time.Time) ([]*model.Deployment, error) {
	return x.queryDeployments(ctx, `
		SELECT `+deploymentColumns+` FROM deployments
		WHERE environment = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at ASC`, env, start, end)
}

func (x *Client) CountDeployments(ctx context.Context, env types.Environment, start, end time.Time) (int64, error) {
	var count int64
	err := x.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM deployments
		WHERE environment = $1 AND created_at BETWEEN $2 AND $3`, env, start, end,
	).Scan(&count)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count deployments")
	}

	return count, nil
}

func (x *Client) ListDeploymentsByIDs(ctx context.Context, ids []types.DeploymentID) ([]*model.Deployment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}

	return x.queryDeployments(ctx, `
		SELECT `+deploymentColumns+` FROM deployments WHERE id = ANY($1)`, pq.Array(raw))
}

func (x *Client) CompleteAttribution(ctx context.Context, id types.DeploymentID, facts []*model.LeadTimeFact) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx)

	const insertFact = `
		INSERT INTO lead_time_facts (commit_sha, deployment_id, repo_id, lead_time_seconds, deployed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (commit_sha, deployment_id) DO NOTHING`

	for _, f := range facts {
		if _, err := tx.ExecContext(ctx, insertFact,
			f.CommitSHA, f.DeploymentID, f.RepoID, f.LeadTimeSeconds, f.DeployedAt,
		); err != nil {
			return goerr.Wrap(err, "failed to save lead time fact", goerr.V("sha", f.CommitSHA))
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE deployments SET lead_time_processed = TRUE WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to mark deployment processed", goerr.V("id", id))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goerr.Wrap(repository.ErrNotFound, "deployment not found", goerr.V("id", id))
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit attribution", goerr.V("id", id))
	}

	return nil
}

func (x *Client) ListLeadTimeFacts(ctx context.Context, query *interfaces.LeadTimeFactQuery) ([]*model.LeadTimeFact, error) {
	if len(query.SHAs) == 0 {
		return nil, nil
	}

	shas := make([]string, len(query.SHAs))
	for i, s := range query.SHAs {
		shas[i] = string(s)
	}

	q := `
		SELECT commit_sha, deployment_id, repo_id, lead_time_seconds, deployed_at
		FROM lead_time_facts WHERE commit_sha = ANY($1)`
	args := []any{pq.Array(shas)}

	if query.Start != nil {
		args = append(args, model.DateOf(*query.Start))
		q += ` AND deployed_at::date >= $` + strconv.Itoa(len(args))
	}
	if query.End != nil {
		args = append(args, model.DateOf(*query.End))
		q += ` AND deployed_at::date <= $` + strconv.Itoa(len(args))
	}
	if len(query.RepoIDs) > 0 {
		repoIDs := make([]string, len(query.RepoIDs))
		for i, r := range query.RepoIDs {
			repoIDs[i] = string(r)
		}
		args = append(args, pq.Array(repoIDs))
		q += ` AND repo_id = ANY($` + strconv.Itoa(len(args)) + `)`
	}

	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list lead time facts")
	}
	defer safe.Close(rows)

	var facts []*model.LeadTimeFact
	for rows.Next() {
		var f model.LeadTimeFact
		if err := rows.Scan(&f.CommitSHA, &f.DeploymentID, &f.RepoID, &f.LeadTimeSeconds, &f.DeployedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan lead time fact")
		}
		facts = append(facts, &f)
	}

	return facts, rows.Err()
}
