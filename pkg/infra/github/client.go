package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v53/github"
	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// productionBranch is the branch whose workflow runs count as production
// deployments.
const productionBranch = "main"

// Client reads commits, workflow runs and pull requests through a GitHub App
// installation.
type Client struct {
	appID     types.GitHubAppID
	installID types.GitHubAppInstallID
	pem       types.GitHubAppPrivateKey
}

var (
	_ interfaces.CommitSource      = (*Client)(nil)
	_ interfaces.DeploymentSource  = (*Client)(nil)
	_ interfaces.PullRequestSource = (*Client)(nil)
)

func New(appID types.GitHubAppID, installID types.GitHubAppInstallID, pem types.GitHubAppPrivateKey) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if installID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "installID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	return &Client{
		appID:     appID,
		installID: installID,
		pem:       pem,
	}, nil
}

func (x *Client) buildClient() (*gh.Client, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, int64(x.appID), int64(x.installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create github client")
	}

	return gh.NewClient(&http.Client{Transport: itr}), nil
}

func (x *Client) FetchCommits(ctx context.Context, owner, repo string, since time.Time) ([]*model.Commit, []*model.CommitEdge, error) {
	client, err := x.buildClient()
	if err != nil {
		return nil, nil, err
	}

	repoID := types.RepoID(owner + "/" + repo)
	opts := &gh.CommitsListOptions{
		Since:       since,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var commits []*model.Commit
	var edges []*model.CommitEdge
	for {
		result, resp, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to list commits",
				goerr.V("repoID", repoID),
				goerr.V("since", since),
			)
		}

		for _, rc := range result {
			sha := types.CommitSHA(rc.GetSHA())
			commits = append(commits, &model.Commit{
				SHA:        sha,
				RepoID:     repoID,
				Author:     rc.GetCommit().GetAuthor().GetName(),
				Message:    rc.GetCommit().GetMessage(),
				AuthoredAt: rc.GetCommit().GetAuthor().GetDate().Time,
			})
			for _, parent := range rc.Parents {
				edges = append(edges, &model.CommitEdge{
					RepoID:    repoID,
					ChildSHA:  sha,
					ParentSHA: types.CommitSHA(parent.GetSHA()),
				})
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.From(ctx).Debug("Fetched commits",
		slog.Any("repoID", repoID),
		slog.Int("commits", len(commits)),
		slog.Int("edges", len(edges)),
	)

	return commits, edges, nil
}

func (x *Client) FetchDeployments(ctx context.Context, owner, repo, workflowFile string, since time.Time) ([]*model.Deployment, error) {
	client, err := x.buildClient()
	if err != nil {
		return nil, err
	}

	repoID := types.RepoID(owner + "/" + repo)
	opts := &gh.ListWorkflowRunsOptions{
		Branch:      productionBranch,
		Status:      "success",
		Created:     ">=" + since.UTC().Format(time.RFC3339),
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var deployments []*model.Deployment
	for {
		result, resp, err := client.Actions.ListWorkflowRunsByFileName(ctx, owner, repo, workflowFile, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list workflow runs",
				goerr.V("repoID", repoID),
				goerr.V("workflowFile", workflowFile),
			)
		}

		for _, run := range result.WorkflowRuns {
			if run.GetHeadSHA() == "" {
				logging.From(ctx).Warn("Skipping workflow run without head SHA",
					slog.Any("repoID", repoID),
					slog.Int64("runID", run.GetID()),
				)
				continue
			}

			deployments = append(deployments, &model.Deployment{
				ID:          types.DeploymentID(fmt.Sprintf("%s:%d", repoID, run.GetID())),
				RepoID:      repoID,
				SHA:         types.CommitSHA(run.GetHeadSHA()),
				Environment: types.EnvProduction,
				CreatedAt:   run.GetCreatedAt().Time,
				UpdatedAt:   run.GetUpdatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.From(ctx).Debug("Fetched workflow runs",
		slog.Any("repoID", repoID),
		slog.Int("deployments", len(deployments)),
	)

	return deployments, nil
}

func (x *Client) FetchPullRequests(ctx context.Context, owner, repo string, since time.Time) ([]*model.PullRequest, error) {
	client, err := x.buildClient()
	if err != nil {
		return nil, err
	}

	repoID := types.RepoID(owner + "/" + repo)
	opts := &gh.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var prs []*model.PullRequest
	for {
		result, resp, err := client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list pull requests", goerr.V("repoID", repoID))
		}

		done := false
		for _, pr := range result {
			if pr.GetUpdatedAt().Before(since) {
				done = true
				break
			}

			firstSHA, err := x.firstCommitSHA(ctx, client, owner, repo, pr.GetNumber())
			if err != nil {
				return nil, err
			}

			prs = append(prs, &model.PullRequest{
				ID:             int64(pr.GetNumber()),
				RepoID:         repoID,
				Title:          pr.GetTitle(),
				State:          pr.GetState(),
				FirstCommitSHA: firstSHA,
				MergedAt:       timePtr(pr.MergedAt),
			})
		}

		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.From(ctx).Debug("Fetched pull requests",
		slog.Any("repoID", repoID),
		slog.Int("count", len(prs)),
	)

	return prs, nil
}

func (x *Client) firstCommitSHA(ctx context.Context, client *gh.Client, owner, repo string, number int) (types.CommitSHA, error) {
	commits, _, err := client.PullRequests.ListCommits(ctx, owner, repo, number, &gh.ListOptions{PerPage: 1})
	if err != nil {
		return "", goerr.Wrap(err, "failed to list pull request commits", goerr.V("number", number))
	}
	if len(commits) == 0 {
		return "", nil
	}

	return types.CommitSHA(commits[0].GetSHA()), nil
}

func timePtr(t *gh.Timestamp) *time.Time {
	if t == nil {
		return nil
	}
	tt := t.Time
	return &tt
}
