package explorer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	explorer "github.com/jeregrine/explorer"
	"github.com/jeregrine/explorer/internal/testutil"
)

func TestEagerArithmetic(t *testing.T) {
	xs := testutil.MustSeries(t, []any{1, 2, 3}, explorer.WithName("xs"))

	out, err := explorer.Add(xs, 10)
	require.NoError(t, err)

	s, ok := out.(*explorer.Series)
	require.True(t, ok, "eager operands should compute to a series")
	assert.False(t, s.IsLazy())
	testutil.AssertElements(t, s, explorer.Integer, []any{int64(11), int64(12), int64(13)})
}

func TestLazyPromotion(t *testing.T) {
	xs := testutil.MustSeries(t, []any{1, 2, 3}, explorer.WithName("xs"))

	out, err := explorer.Add(explorer.Lazy(xs), 10)
	require.NoError(t, err)

	node, ok := out.(*explorer.Expr)
	require.True(t, ok, "a lazy operand should record an expression")
	assert.True(t, node.IsLazy())
	assert.Equal(t, explorer.Integer, node.Dtype())
	assert.Equal(t, "add(series(xs), lit(10))", node.String())
}

func TestLazyComposition(t *testing.T) {
	xs := testutil.MustSeries(t, []any{1.0, 2.0}, explorer.WithName("xs"))

	scaled, err := explorer.Multiply(explorer.Lazy(xs), 2)
	require.NoError(t, err)

	mask, err := explorer.Greater(scaled, 3)
	require.NoError(t, err)

	node := mask.(*explorer.Expr)
	assert.Equal(t, explorer.Boolean, node.Dtype())
	assert.Equal(t, "greater(multiply(series(xs), lit(2)), lit(3))", node.String())
}

func TestLazyRecordsErrorsEagerly(t *testing.T) {
	xs := testutil.MustSeries(t, []any{"a", "b"})

	_, err := explorer.Add(explorer.Lazy(xs), 1)
	require.Error(t, err)
	assert.True(t, explorer.IsKind(err, explorer.UnsupportedDtype))
}

func TestUnaryDispatch(t *testing.T) {
	xs := testutil.MustSeries(t, []any{"Hello"})

	eager, err := explorer.Upcase(xs)
	require.NoError(t, err)
	testutil.AssertElements(t, eager.(*explorer.Series), explorer.String, []any{"HELLO"})

	lazy, err := explorer.Upcase(explorer.Lazy(xs))
	require.NoError(t, err)
	assert.True(t, lazy.IsLazy())
	assert.Equal(t, explorer.String, lazy.(*explorer.Expr).Dtype())
}

func TestFacadeConstructors(t *testing.T) {
	s, err := explorer.FromList([]any{1, nil, 3}, explorer.WithName("xs"))
	require.NoError(t, err)
	assert.Equal(t, explorer.Integer, s.Dtype())

	buf, err := explorer.ToBinary(s)
	require.NoError(t, err)
	assert.Len(t, buf, 24)

	back, err := explorer.FromBinary(buf[:16], explorer.Integer)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Len())
}

func TestFacadeCast(t *testing.T) {
	s := testutil.MustSeries(t, []any{1, 2})

	out, err := explorer.Cast(s, explorer.Float)
	require.NoError(t, err)
	testutil.AssertElements(t, out.(*explorer.Series), explorer.Float, []any{1.0, 2.0})

	lazy, err := explorer.Cast(explorer.Lazy(s), explorer.String)
	require.NoError(t, err)
	assert.Equal(t, explorer.String, lazy.(*explorer.Expr).Dtype())
}

func TestFacadeAggregations(t *testing.T) {
	s := testutil.MustSeries(t, []any{1, nil, 3})

	v, err := explorer.Sum(s)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	assert.Equal(t, 2, explorer.Count(s))
	assert.Equal(t, 2, explorer.NDistinct(s.Slice(0, 2)))
}

func TestFacadeSelect(t *testing.T) {
	pred := testutil.MustSeries(t, []any{true, false})
	out, err := explorer.Select(pred, 1, 0)
	require.NoError(t, err)
	testutil.AssertElements(t, out.(*explorer.Series), explorer.Integer, []any{int64(1), int64(0)})
}

func TestFacadeSortAndFill(t *testing.T) {
	s := testutil.MustSeries(t, []any{3, nil, 1})

	sorted, err := explorer.Sort(s, explorer.Ascending, explorer.NilsDefault)
	require.NoError(t, err)
	testutil.AssertElements(t, sorted.(*explorer.Series), explorer.Integer, []any{int64(1), int64(3), nil})

	filled, err := explorer.FillMissing(s, explorer.FillForward)
	require.NoError(t, err)
	testutil.AssertElements(t, filled.(*explorer.Series), explorer.Integer, []any{int64(3), int64(3), int64(1)})
}

func TestSetConfig(t *testing.T) {
	original := explorer.GetConfig()
	defer func() {
		require.NoError(t, explorer.SetConfig(original))
	}()

	cfg := original
	cfg.PreviewLimit = 5
	require.NoError(t, explorer.SetConfig(cfg))
	assert.Equal(t, 5, explorer.GetConfig().PreviewLimit)

	cfg.ParallelThreshold = -1
	assert.Error(t, explorer.SetConfig(cfg))
}

func TestVersionInfo(t *testing.T) {
	info := explorer.VersionInfo()
	assert.NotEmpty(t, info.Version)
	assert.Contains(t, info.String(), "Version:")
}
