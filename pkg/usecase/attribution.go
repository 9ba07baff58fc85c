package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// CalculateLeadTimes attributes commits to every production deployment that
// has not been processed yet, oldest first, and records one lead-time fact per
// attributed commit. Each deployment is processed exactly once: even a
// deployment whose head commit is absent from the graph is marked processed,
// with an empty attribution.
func (x *UseCase) CalculateLeadTimes(ctx context.Context) error {
	store := x.clients.Store()

	deployments, err := store.ListUnprocessedDeployments(ctx, types.EnvProduction)
	if err != nil {
		return goerr.Wrap(err, "failed to list unprocessed deployments")
	}

	for _, deployment := range deployments {
		facts, err := x.attributeCommits(ctx, deployment)
		if err != nil {
			return err
		}

		if err := store.CompleteAttribution(ctx, deployment.ID, facts); err != nil {
			return goerr.Wrap(err, "failed to complete attribution", goerr.V("deploymentID", deployment.ID))
		}

		logging.From(ctx).Info("Attributed commits to deployment",
			slog.Any("deploymentID", deployment.ID),
			slog.Any("repoID", deployment.RepoID),
			slog.Int("commits", len(facts)),
		)
	}

	return nil
}

// attributeCommits walks the commit graph backward from the deployment's head
// commit and stops at the ancestor closure of the previous deployment. The
// boundary commits themselves are not attributed.
func (x *UseCase) attributeCommits(ctx context.Context, deployment *model.Deployment) ([]*model.LeadTimeFact, error) {
	store := x.clients.Store()

	boundary := map[types.CommitSHA]struct{}{}
	prev, err := store.FindPreviousDeployment(ctx, deployment.RepoID, deployment.Environment, deployment.CreatedAt)
	if err == nil {
		if boundary, err = x.ancestorClosure(ctx, deployment.RepoID, prev.SHA); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to find previous deployment", goerr.V("deploymentID", deployment.ID))
	}

	visited := map[types.CommitSHA]struct{}{}
	queue := []types.CommitSHA{deployment.SHA}

	var facts []*model.LeadTimeFact
	for len(queue) > 0 {
		sha := queue[0]
		queue = queue[1:]

		if _, ok := visited[sha]; ok {
			continue
		}
		visited[sha] = struct{}{}

		if _, ok := boundary[sha]; ok {
			continue
		}

		commit, err := store.GetCommit(ctx, deployment.RepoID, sha)
		if errors.Is(err, repository.ErrNotFound) {
			// The graph is truncated here, e.g. by the sync window. The
			// branch simply ends.
			continue
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get commit", goerr.V("sha", sha))
		}

		leadTime := int64(deployment.CreatedAt.Sub(commit.AuthoredAt).Seconds())
		if leadTime < 0 {
			logging.From(ctx).Warn("Negative lead time, commit authored after deployment",
				slog.Any("sha", sha),
				slog.Any("deploymentID", deployment.ID),
				slog.Int64("leadTimeSeconds", leadTime),
			)
		}

		facts = append(facts, &model.LeadTimeFact{
			CommitSHA:       sha,
			DeploymentID:    deployment.ID,
			RepoID:          deployment.RepoID,
			LeadTimeSeconds: leadTime,
			DeployedAt:      deployment.CreatedAt,
		})

		parents, err := store.ListParents(ctx, deployment.RepoID, sha)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list parents", goerr.V("sha", sha))
		}
		queue = append(queue, parents...)
	}

	return facts, nil
}

// ancestorClosure collects every commit reachable from the given head,
// including the head itself.
func (x *UseCase) ancestorClosure(ctx context.Context, repoID types.RepoID, head types.CommitSHA) (map[types.CommitSHA]struct{}, error) {
	store := x.clients.Store()

	closure := map[types.CommitSHA]struct{}{}
	queue := []types.CommitSHA{head}

	for len(queue) > 0 {
		sha := queue[0]
		queue = queue[1:]

		if _, ok := closure[sha]; ok {
			continue
		}
		closure[sha] = struct{}{}

		parents, err := store.ListParents(ctx, repoID, sha)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list parents", goerr.V("sha", sha))
		}
		queue = append(queue, parents...)
	}

	return closure, nil
}
