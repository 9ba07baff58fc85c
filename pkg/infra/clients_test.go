package infra_test

import (
	"net/http"
	"testing"

	"github.com/k-morita/deployscope/pkg/domain/mock"
	"github.com/k-morita/deployscope/pkg/infra"
	"github.com/k-morita/deployscope/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		// HTTPClient should return the default http.DefaultClient
		gt.V(t, clients.HTTPClient()).Equal(http.DefaultClient)
		// Collaborators should be nil without configuration
		gt.V(t, clients.Store()).Equal(nil)
		gt.V(t, clients.IncidentSource()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)
	})

	t.Run("WithStore option sets repository", func(t *testing.T) {
		store := memory.New()
		clients := infra.New(infra.WithStore(store))
		gt.V(t, clients.Store()).Equal(store)
	})

	t.Run("WithHTTPClient option sets HTTP client", func(t *testing.T) {
		mockHTTP := &mockHTTPClient{}
		clients := infra.New(infra.WithHTTPClient(mockHTTP))
		gt.V(t, clients.HTTPClient()).Equal(mockHTTP)
	})

	t.Run("WithBigQuery option sets BigQuery client", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{}
		clients := infra.New(infra.WithBigQuery(mockBQ))
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		store := memory.New()
		mockCommits := &mock.CommitSourceMock{}
		mockHTTP := &mockHTTPClient{}

		clients := infra.New(
			infra.WithStore(store),
			infra.WithCommitSource(mockCommits),
			infra.WithHTTPClient(mockHTTP),
		)

		gt.V(t, clients.Store()).Equal(store)
		gt.V(t, clients.CommitSource()).Equal(mockCommits)
		gt.V(t, clients.HTTPClient()).Equal(mockHTTP)
	})
}

type mockHTTPClient struct{}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, nil
}
