package aws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoCachesSuccessOnly(t *testing.T) {
	var m memo[string]
	calls := 0

	_, err := m.Do("k", func() (string, error) {
		calls++
		return "", errors.New("throttled")
	})
	require.Error(t, err)

	v, err := m.Do("k", func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	v, err = m.Do("k", func() (string, error) {
		calls++
		return "other", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)

	m.Forget()
	v, _ = m.Do("k", func() (string, error) { return "fresh", nil })
	assert.Equal(t, "fresh", v)
}

func TestMemoSharesInFlightCalls(t *testing.T) {
	var m memo[[]string]
	var calls int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.Do(memoKey("default", "us-east-1"), func() ([]string, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return []string{"us-east-1"}, nil
			})
		}(i)
	}
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(8))
	for _, r := range results {
		assert.Equal(t, []string{"us-east-1"}, r)
	}
	cached, err := m.Do(memoKey("default", "us-east-1"), func() ([]string, error) {
		return nil, errors.New("should not be called")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1"}, cached)
}

func TestMemoKeySeparatesParts(t *testing.T) {
	assert.NotEqual(t, memoKey("ab", "c"), memoKey("a", "bc"))
}
