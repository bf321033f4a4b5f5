package parallel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeCoversEveryIndexExactlyOnce(t *testing.T) {
	assert := require.New(t)

	const n = 1000
	seen := make([]int, n)
	Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			seen[i]++
		}
	})
	for i, count := range seen {
		assert.Equal(1, count, "index %d visited %d times", i, count)
	}
}

func TestRangeEmpty(t *testing.T) {
	called := false
	Range(0, func(lo, hi int) { called = true })
	require.False(t, called)
}

func TestFoldSumsAllElements(t *testing.T) {
	assert := require.New(t)

	const n = 10000
	sum := Fold(n, 0, func(i int) int { return i + 1 }, func(a, b int) int { return a + b })
	assert.Equal(n*(n+1)/2, sum)
}

func TestFoldZeroElements(t *testing.T) {
	sum := Fold(0, 42, func(i int) int { return i }, func(a, b int) int { return a + b })
	require.Equal(t, 42, sum)
}

func TestMapFillsEveryIndex(t *testing.T) {
	assert := require.New(t)

	const n = 256
	out := make([]int, n)
	Map(n, out, func(i int) int { return i * i })
	for i, v := range out {
		assert.Equal(i*i, v)
	}
}
