package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	gen := idgen.NewSequential("entity")

	assert.Equal(t, "entity_1", gen.Generate())
	assert.Equal(t, "entity_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequential_ConcurrentCallsNeverRepeat(t *testing.T) {
	gen := idgen.NewSequential("entity")
	seen := sync.Map{}
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, dup := seen.LoadOrStore(gen.Generate(), struct{}{})
				assert.False(t, dup)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "entity_801", gen.Generate())
}

func TestUUID(t *testing.T) {
	gen := idgen.NewUUID("entity")

	a, b := gen.Generate(), gen.Generate()

	assert.True(t, strings.HasPrefix(a, "entity_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, idgen.NewUUID("").Generate(), 36)
}

func TestFunc(t *testing.T) {
	var gen idgen.Generator = idgen.Func(func() string { return "dummy_a" })

	assert.Equal(t, "dummy_a", gen.Generate())
}
