package model_test

import (
	"errors"
	"testing"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestOwnerRepo(t *testing.T) {
	cases := []struct {
		name  string
		url   string
		owner string
		repo  string
	}{
		{"https", "https://github.com/acme/widget", "acme", "widget"},
		{"https with .git", "https://github.com/acme/widget.git", "acme", "widget"},
		{"https with trailing slash", "https://github.com/acme/widget/", "acme", "widget"},
		{"ssh", "git@github.com:acme/widget.git", "acme", "widget"},
		{"ssh without .git", "git@github.com:acme/widget", "acme", "widget"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &model.RepositoryConfig{URL: tc.url}
			owner, repo, err := cfg.OwnerRepo()
			gt.NoError(t, err)
			gt.V(t, owner).Equal(tc.owner)
			gt.V(t, repo).Equal(tc.repo)
		})
	}
}

func TestOwnerRepoMalformed(t *testing.T) {
	cases := []string{
		"",
		"not a url",
		"https://gitlab.com/acme/widget",
		"https://github.com/acme",
		"https://github.com/acme/widget/extra",
		"git@github.com:acme",
	}

	for _, url := range cases {
		cfg := &model.RepositoryConfig{URL: url}
		_, _, err := cfg.OwnerRepo()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	}
}
