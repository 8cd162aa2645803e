package tractfilter

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertPartition checks that outliers and inliers are disjoint and together
// cover 0..n-1.
func assertPartition(t *testing.T, n int, outliers, inliers []int) {
	t.Helper()
	all := append(slices.Clone(outliers), inliers...)
	slices.Sort(all)
	assert.Equal(t, identity(n), all)
}

func TestPrune_Boundaries(t *testing.T) {
	scores := []float64{0, 0.25, 0.5, 0.75, 1}

	out, in, err := Prune(len(scores), 0.0, scores)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, in)

	out, in, err = Prune(len(scores), 1.01, scores)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, out)
	assert.Empty(t, in)
}

func TestPrune_ThresholdIsInclusiveForInliers(t *testing.T) {
	scores := []float64{0.3, 0.5, 0.7, 0.49999, 0.5}

	out, in, err := Prune(len(scores), 0.5, scores)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3}, out)
	assert.Equal(t, []int{1, 2, 4}, in)
	assertPartition(t, len(scores), out, in)
}

func TestPrune_Empty(t *testing.T) {
	out, in, err := Prune(0, 0.5, nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.NotNil(t, in)
	assert.Empty(t, out)
	assert.Empty(t, in)
}

func TestPrune_InvalidInput(t *testing.T) {
	_, _, err := Prune(3, 0.5, []float64{1, 1})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	for _, th := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err := Prune(2, th, []float64{1, 1})
		assert.ErrorIs(t, err, ErrInvalidParameter, "threshold=%v", th)
	}
}

func TestRemoveOutliers_TightGroupAndStray(t *testing.T) {
	b := tightGroupAndStray()

	inliers, outliers, err := RemoveOutliers(b, 0.5, testConfig())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, inliers.Indices)
	assert.Equal(t, []int{12}, outliers.Indices)
	assert.Same(t, &b[12][0], &outliers.At(0)[0], "views must share the bundle's points")
}

func TestRemoveOutliers_Partition(t *testing.T) {
	b := tube(40, 17)
	for _, th := range []float64{0, 0.3, 0.6, 0.9, 1.01} {
		inliers, outliers, err := RemoveOutliers(b, th, testConfig())
		require.NoError(t, err)
		assertPartition(t, len(b), outliers.Indices, inliers.Indices)
	}
}

func TestRemoveOutliers_Errors(t *testing.T) {
	g := &groupAll{}
	cfg := testConfig()
	cfg.Clusterer = g

	_, _, err := RemoveOutliers(tightGroupAndStray(), math.NaN(), cfg)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, _, err = RemoveOutliers(nil, 0.5, cfg)
	assert.ErrorIs(t, err, ErrEmptyInput)

	cfg.NumTrials = 1
	_, _, err = RemoveOutliers(tightGroupAndStray(), 0.5, cfg)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	assert.Empty(t, g.calls)
}
