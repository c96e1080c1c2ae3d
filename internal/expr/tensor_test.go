package expr

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentReadsAndUpdates(t *testing.T) {
	_, tensor := Parameter([]float64{0, 0, 0, 0}, true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf := make([]float64, 4)
		for i := 1; i <= 500; i++ {
			for j := range buf {
				buf[j] = float64(i)
			}
			tensor.Update(buf)
		}
	}()

	// Every writer fills the tensor uniformly, so any snapshot a reader
	// observes must be uniform too. A torn read would mix values.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				snap := tensor.Values()
				for _, v := range snap[1:] {
					assert.Equal(t, snap[0], v, "torn read: %v", snap)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, []float64{500, 500, 500, 500}, tensor.Values())
}

func TestConcurrentGraphConstruction(t *testing.T) {
	// Independent goroutines may build operations over a shared parameter.
	base, _ := Parameter([]float64{1, 2, 3}, true)

	var wg sync.WaitGroup
	results := make([]Expression, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = base.Sin().Mul(Constant(float64(i))).Add(base.Sqr())
		}(i)
	}
	wg.Wait()

	ids := make(map[GradID]bool)
	for _, e := range results {
		tensor, ok := e.Value().Tensor()
		assert.True(t, ok)
		assert.Equal(t, 3, tensor.Len())
		id, ok := tensor.GradID()
		assert.True(t, ok)
		assert.False(t, ids[id], "gradient identities must be unique")
		ids[id] = true
	}
}
