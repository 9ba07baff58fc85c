package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/k-morita/deployscope/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

func (x *Client) SavePullRequest(ctx context.Context, pr *model.PullRequest) error {
	const q = `
		INSERT INTO pull_requests (id, repo_id, title, state, first_commit_sha, merged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (repo_id, id) DO UPDATE SET
			title = EXCLUDED.title,
			state = EXCLUDED.state,
			first_commit_sha = EXCLUDED.first_commit_sha,
			merged_at = EXCLUDED.merged_at`

	if _, err := x.db.ExecContext(ctx, q,
		pr.ID, pr.RepoID, pr.Title, pr.State, pr.FirstCommitSHA, pr.MergedAt,
	); err != nil {
		return goerr.Wrap(err, "failed to save pull request",
			goerr.V("repoID", pr.RepoID),
			goerr.V("id", pr.ID),
		)
	}

	return nil
}

func (x *Client) ListPullRequests(ctx context.Context) ([]*model.PullRequest, error) {
	const q = `
		SELECT id, repo_id, title, state, first_commit_sha, merged_at
		FROM pull_requests ORDER BY repo_id, id`

	rows, err := x.db.QueryContext(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pull requests")
	}
	defer safe.Close(rows)

	var prs []*model.PullRequest
	for rows.Next() {
		var pr model.PullRequest
		if err := rows.Scan(&pr.ID, &pr.RepoID, &pr.Title, &pr.State, &pr.FirstCommitSHA, &pr.MergedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan pull request")
		}
		prs = append(prs, &pr)
	}

	return prs, rows.Err()
}

func (x *Client) SaveRepositoryConfig(ctx context.Context, cfg *model.RepositoryConfig) error {
	const q = `
		INSERT INTO repository_configs (id, url, service_name, workflow_file)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			url = EXCLUDED.url,
			service_name = EXCLUDED.service_name,
			workflow_file = EXCLUDED.workflow_file`

	if _, err := x.db.ExecContext(ctx, q, cfg.ID, cfg.URL, cfg.ServiceName, cfg.WorkflowFile); err != nil {
		return goerr.Wrap(err, "failed to save repository config", goerr.V("id", cfg.ID))
	}

	return nil
}

func (x *Client) ListRepositoryConfigs(ctx context.Context) ([]*model.RepositoryConfig, error) {
	const q = `SELECT id, url, service_name, workflow_file FROM repository_configs ORDER BY id`

	rows, err := x.db.QueryContext(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repository configs")
	}
	defer safe.Close(rows)

	var configs []*model.RepositoryConfig
	for rows.Next() {
		var cfg model.RepositoryConfig
		if err := rows.Scan(&cfg.ID, &cfg.URL, &cfg.ServiceName, &cfg.WorkflowFile); err != nil {
			return nil, goerr.Wrap(err, "failed to scan repository config")
		}
		configs = append(configs, &cfg)
	}

	return configs, rows.Err()
}

func (x *Client) GetWatermark(ctx context.Context, job types.SyncJob) (*model.SyncWatermark, error) {
	var wm model.SyncWatermark
	err := x.db.QueryRowContext(ctx,
		`SELECT job, last_successful_run FROM sync_watermarks WHERE job = $1`, job,
	).Scan(&wm.Job, &wm.LastSuccessfulRun)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "watermark not found", goerr.V("job", job))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get watermark")
	}

	return &wm, nil
}

func (x *Client) SetWatermark(ctx context.Context, job types.SyncJob, lastRun time.Time) error {
	const q = `
		INSERT INTO sync_watermarks (job, last_successful_run)
		VALUES ($1, $2)
		ON CONFLICT (job) DO UPDATE SET last_successful_run = EXCLUDED.last_successful_run`

	if _, err := x.db.ExecContext(ctx, q, job, lastRun); err != nil {
		return goerr.Wrap(err, "failed to set watermark", goerr.V("job", job))
	}

	return nil
}
