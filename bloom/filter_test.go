package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/huaci/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("abandon"))

	f.Add("abandon")

	assert.True(t, f.Test("abandon"))
	assert.False(t, f.Test("abandoned"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("run")
	f.Add("ran")
	f.Add("running")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	word := "run"

	f.Add(word)
	countAfterFirst := f.EstimatedCount()

	f.Add(word)
	f.Add(word)
	f.Add(word)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(word))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("word%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("absent%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

func TestNewFilter_ZeroItems(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)

	assert.False(t, f.Test("run"))
}
