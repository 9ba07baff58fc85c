package model_test

import (
	"testing"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestCFRLevel(t *testing.T) {
	cases := []struct {
		percentage float64
		want       types.DORALevel
	}{
		{0, types.LevelElite},
		{15, types.LevelElite},
		{15.01, types.LevelHigh},
		{30, types.LevelHigh},
		{30.01, types.LevelMedium},
		{45, types.LevelMedium},
		{45.01, types.LevelLow},
		{100, types.LevelLow},
		{160, types.LevelLow},
	}

	for _, tc := range cases {
		gt.V(t, model.CFRLevel(tc.percentage)).Equal(tc.want)
	}
}
