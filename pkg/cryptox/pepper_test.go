package cryptox

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPepper_ConcurrentFirstUse(t *testing.T) {
	// Fresh path so every goroutine contends on the initial load.
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	const workers = 8
	results := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GetPepper()
		}(i)
	}
	wg.Wait()

	require.NotEmpty(t, results[0])
	for _, p := range results[1:] {
		require.Equal(t, results[0], p, "all callers must observe the same pepper")
	}
}
