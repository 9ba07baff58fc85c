package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/k-morita/deployscope/pkg/utils/safe"
	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
)

func (x *Client) SaveCommit(ctx context.Context, commit *model.Commit) error {
	const q = `
		INSERT INTO commits (repo_id, sha, author, message, authored_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (repo_id, sha) DO NOTHING`

	if _, err := x.db.ExecContext(ctx, q,
		commit.RepoID, commit.SHA, commit.Author, commit.Message, commit.AuthoredAt,
	); err != nil {
		return goerr.Wrap(err, "failed to save commit", goerr.V("sha", commit.SHA))
	}

	return nil
}

func (x *Client) SaveCommitEdge(ctx context.Context, edge *model.CommitEdge) error {
	const q = `
		INSERT INTO commit_edges (repo_id, child_sha, parent_sha)
		VALUES ($1, $2, $3)
		ON CONFLICT (repo_id, child_sha, parent_sha) DO NOTHING`

	if _, err := x.db.ExecContext(ctx, q, edge.RepoID, edge.ChildSHA, edge.ParentSHA); err != nil {
		return goerr.Wrap(err, "failed to save commit edge", goerr.V("child", edge.ChildSHA))
	}

	return nil
}

func (x *Client) GetCommit(ctx context.Context, repoID types.RepoID, sha types.CommitSHA) (*model.Commit, error) {
	const q = `
		SELECT repo_id, sha, author, message, authored_at
		FROM commits WHERE repo_id = $1 AND sha = $2`

	var c model.Commit
	err := x.db.QueryRowContext(ctx, q, repoID, sha).Scan(
		&c.RepoID, &c.SHA, &c.Author, &c.Message, &c.AuthoredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "commit not found",
			goerr.V("repoID", repoID),
			goerr.V("sha", sha),
		)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get commit")
	}

	return &c, nil
}

func (x *Client) ListParents(ctx context.Context, repoID types.RepoID, sha types.CommitSHA) ([]types.CommitSHA, error) {
	const q = `SELECT parent_sha FROM commit_edges WHERE repo_id = $1 AND child_sha = $2`

	rows, err := x.db.QueryContext(ctx, q, repoID, sha)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list parents", goerr.V("sha", sha))
	}
	defer safe.Close(rows)

	var parents []types.CommitSHA
	for rows.Next() {
		var p types.CommitSHA
		if err := rows.Scan(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to scan parent sha")
		}
		parents = append(parents, p)
	}

	return parents, rows.Err()
}

func (x *Client) ListCommitEdges(ctx context.Context) ([]*model.CommitEdge, error) {
	const q = `SELECT repo_id, child_sha, parent_sha FROM commit_edges`

	rows, err := x.db.QueryContext(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commit edges")
	}
	defer safe.Close(rows)

	var edges []*model.CommitEdge
	for rows.Next() {
		var e model.CommitEdge
		if err := rows.Scan(&e.RepoID, &e.ChildSHA, &e.ParentSHA); err != nil {
			return nil, goerr.Wrap(err, "failed to scan commit edge")
		}
		edges = append(edges, &e)
	}

	return edges, rows.Err()
}

func (x *Client) ListCommitsByAuthors(ctx context.Context, authors []string) ([]*model.Commit, error) {
	q := `SELECT repo_id, sha, author, message, authored_at FROM commits`
	var args []any
	if len(authors) > 0 {
		lowered := make([]string, len(authors))
		for i, a := range authors {
			lowered[i] = strings.ToLower(a)
		}
		q += ` WHERE LOWER(author) = ANY($1)`
		args = append(args, pq.Array(lowered))
	}

	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commits by authors")
	}
	defer safe.Close(rows)

	var commits []*model.Commit
	for rows.Next() {
		var c model.Commit
		if err := rows.Scan(&c.RepoID, &c.SHA, &c.Author, &c.Message, &c.AuthoredAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan commit")
		}
		commits = append(commits, &c)
	}

	return commits, rows.Err()
}
