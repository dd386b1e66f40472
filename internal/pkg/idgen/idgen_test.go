package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("fighter")

	assert.Equal(t, "fighter_1", g.Generate())
	assert.Equal(t, "fighter_2", g.Generate())
	assert.Equal(t, uint64(2), g.Count())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("run").Generate()

	require.True(t, strings.HasPrefix(id, "run_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "run_"))
	assert.NoError(t, err)

	assert.NotEqual(t, id, idgen.NewUUID("run").Generate())
}
