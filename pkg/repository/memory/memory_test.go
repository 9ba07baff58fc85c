package memory_test

import (
	"testing"

	"github.com/k-morita/deployscope/pkg/repository/memory"
	"github.com/k-morita/deployscope/pkg/repository/testhelper"
)

func TestMemoryRepository(t *testing.T) {
	testhelper.TestAll(t, memory.New())
}
