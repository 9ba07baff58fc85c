package infra

import (
	"net/http"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
)

type Clients struct {
	store        interfaces.MetricsRepository
	commitSrc    interfaces.CommitSource
	deploySrc    interfaces.DeploymentSource
	incidentSrc  interfaces.IncidentSource
	pullReqSrc   interfaces.PullRequestSource
	bqClient     interfaces.BigQuery
	httpClient   HTTPClient
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Store() interfaces.MetricsRepository {
	return x.store
}
func (x *Clients) CommitSource() interfaces.CommitSource {
	return x.commitSrc
}
func (x *Clients) DeploymentSource() interfaces.DeploymentSource {
	return x.deploySrc
}
func (x *Clients) IncidentSource() interfaces.IncidentSource {
	return x.incidentSrc
}
func (x *Clients) PullRequestSource() interfaces.PullRequestSource {
	return x.pullReqSrc
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) HTTPClient() HTTPClient {
	return x.httpClient
}

func WithStore(repo interfaces.MetricsRepository) Option {
	return func(x *Clients) {
		x.store = repo
	}
}

func WithCommitSource(src interfaces.CommitSource) Option {
	return func(x *Clients) {
		x.commitSrc = src
	}
}

func WithDeploymentSource(src interfaces.DeploymentSource) Option {
	return func(x *Clients) {
		x.deploySrc = src
	}
}

func WithIncidentSource(src interfaces.IncidentSource) Option {
	return func(x *Clients) {
		x.incidentSrc = src
	}
}

func WithPullRequestSource(src interfaces.PullRequestSource) Option {
	return func(x *Clients) {
		x.pullReqSrc = src
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}
