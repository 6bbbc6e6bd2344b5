package hypothesisgraphql

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const cachedSchema = `type Query { hello: String }`

func TestCacheReturnsSameSchemaInstance(t *testing.T) {
	cache := NewCache()

	first, err := cache.Load(cachedSchema)
	require.NoError(t, err)
	second, err := cache.Load(cachedSchema)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestCachesAreIndependent(t *testing.T) {
	a, err := NewCache().Load(cachedSchema)
	require.NoError(t, err)
	b, err := NewCache().Load(cachedSchema)
	require.NoError(t, err)
	require.NotSame(t, a, b)
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	cache := NewCache()
	_, err := cache.Load(`type {`)
	require.Error(t, err)

	// The broken source must not poison later loads of valid text.
	_, err = cache.Load(cachedSchema)
	require.NoError(t, err)
}

func TestCacheIsSafeForConcurrentLoads(t *testing.T) {
	cache := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := cache.Load(cachedSchema)
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestWithCacheOverridesProcessCache(t *testing.T) {
	cache := NewCache()
	_, err := Queries(SDL(cachedSchema), WithCache(cache))
	require.NoError(t, err)

	// The schema is now resident in the explicit cache.
	first, err := cache.Load(cachedSchema)
	require.NoError(t, err)
	second, err := cache.Load(cachedSchema)
	require.NoError(t, err)
	require.Same(t, first, second)
}
