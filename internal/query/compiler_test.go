package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver serves category lookups from fixed maps, standing in for the
// reference tables.
type fakeResolver struct {
	propertyTypes    map[string]uint
	transactionTypes map[string]uint
	roomOptions      map[string][]uint
	bathroomOptions  map[string][]uint
	err              error
}

func (f *fakeResolver) PropertyTypeID(_ context.Context, name string) (uint, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	id, ok := f.propertyTypes[name]
	return id, ok, nil
}

func (f *fakeResolver) TransactionTypeID(_ context.Context, name string) (uint, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	id, ok := f.transactionTypes[name]
	return id, ok, nil
}

func (f *fakeResolver) RoomOptionIDs(_ context.Context, label string) ([]uint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roomOptions[label], nil
}

func (f *fakeResolver) BathroomOptionIDs(_ context.Context, label string) ([]uint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bathroomOptions[label], nil
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		propertyTypes:    map[string]uint{"아파트": 1, "오피스텔": 2},
		transactionTypes: map[string]uint{"매매": 1, "전세": 2, "월세": 3},
		roomOptions:      map[string][]uint{"2": {2}, "4": {4, 5}},
		bathroomOptions:  map[string][]uint{"1": {1}},
	}
}

func kinds(filters []Filter) []FilterKind {
	out := make([]FilterKind, 0, len(filters))
	for _, f := range filters {
		out = append(out, f.Kind)
	}
	return out
}

func TestCompile_EmptyCriteria(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{}, PublicPolicy(), 12)
	require.NoError(t, err)

	// policy baseline only, newest first, first page with the default size
	require.Len(t, plan.Filters, 1)
	assert.Equal(t, Eq("visible", true), plan.Filters[0])
	assert.Equal(t, "created_at DESC", plan.Sort.OrderClause())
	assert.Equal(t, 1, plan.Page)
	assert.Equal(t, 12, plan.Limit)
	assert.Equal(t, 0, plan.Offset)
}

func TestCompile_KeywordDigitsMeansID(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{Keyword: "123"}, AdminPolicy(), 10)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	assert.Equal(t, Eq("id", 123), plan.Filters[0])
}

func TestCompile_KeywordSignedNumberMeansAddress(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())

	for _, kw := range []string{"-12", "+7", "12a", "1 2"} {
		plan, err := c.Compile(context.Background(), Criteria{Keyword: kw}, AdminPolicy(), 10)
		require.NoError(t, err)
		require.Len(t, plan.Filters, 1, "keyword %q", kw)
		assert.Equal(t, Contains("address", kw), plan.Filters[0], "keyword %q", kw)
	}
}

func TestCompile_KeywordTextMeansAddress(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{Keyword: " 서울 강남 "}, AdminPolicy(), 10)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	assert.Equal(t, Contains("address", "서울 강남"), plan.Filters[0])
}

func TestCompile_ThemeUsesJSONContainment(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{Theme: "역세권"}, AdminPolicy(), 10)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	assert.Equal(t, JSONHas("themes", "역세권"), plan.Filters[0])
}

func TestCompile_CategoryResolution(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{
		PropertyType: "아파트",
		BuyType:      "전세",
		Rooms:        "4",
		Bathrooms:    "1",
	}, AdminPolicy(), 10)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 4)
	assert.Equal(t, Eq("property_type_id", uint(1)), plan.Filters[0])
	assert.Equal(t, Eq("transaction_type_id", uint(2)), plan.Filters[1])
	assert.Equal(t, In("room_option_id", []interface{}{uint(4), uint(5)}), plan.Filters[2])
	assert.Equal(t, In("bathroom_option_id", []interface{}{uint(1)}), plan.Filters[3])
}

func TestCompile_UnresolvableLabelMatchesNothing(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{PropertyType: "상가"}, AdminPolicy(), 10)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	assert.Equal(t, FilterAlwaysFalse, plan.Filters[0].Kind)

	plan, err = c.Compile(context.Background(), Criteria{Rooms: "9"}, AdminPolicy(), 10)
	require.NoError(t, err)
	require.Len(t, plan.Filters, 1)
	assert.Equal(t, FilterAlwaysFalse, plan.Filters[0].Kind)
}

func TestCompile_ResolverErrorAborts(t *testing.T) {
	t.Parallel()

	r := newFakeResolver()
	r.err = errors.New("connection refused")
	c := NewCompiler(r)

	_, err := c.Compile(context.Background(), Criteria{PropertyType: "아파트"}, AdminPolicy(), 10)
	assert.Error(t, err)
}

func TestCompile_PriceNeedsBuyType(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())

	// no transaction type: the price filter has no column to bind to
	plan, err := c.Compile(context.Background(), Criteria{PriceRange: "1억~3억"}, AdminPolicy(), 10)
	require.NoError(t, err)
	assert.Empty(t, plan.Filters)

	// with one: the range lands on that type's price column
	plan, err = c.Compile(context.Background(), Criteria{BuyType: "매매", PriceRange: "1억~3억"}, AdminPolicy(), 10)
	require.NoError(t, err)
	require.Len(t, plan.Filters, 2)

	price := plan.Filters[1]
	assert.Equal(t, FilterRange, price.Kind)
	assert.Equal(t, "sale_price", price.Column)
	assert.Equal(t, float64(100_000_000), *price.Range.Min)
	assert.Equal(t, float64(300_000_000), *price.Range.Max)
}

func TestCompile_PriceColumnPerTransactionType(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())

	cases := map[string]string{
		"매매": "sale_price",
		"전세": "lump_sum_price",
		"월세": "rental_price",
	}
	for buyType, column := range cases {
		plan, err := c.Compile(context.Background(), Criteria{BuyType: buyType, PriceRange: "5천만 이상"}, AdminPolicy(), 10)
		require.NoError(t, err)
		require.Len(t, plan.Filters, 2, "buyType %q", buyType)
		assert.Equal(t, column, plan.Filters[1].Column, "buyType %q", buyType)
	}
}

func TestCompile_AreaBecomesMultiColumnOrGroup(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{AreaRange: "10~20"}, AdminPolicy(), 10)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	area := plan.Filters[0]
	assert.Equal(t, FilterAnyColumnRange, area.Kind)
	assert.Equal(t, areaColumns, area.Columns)
	assert.InDelta(t, 10*PyeongToSquareMeter, *area.Range.Min, 1e-9)
	assert.InDelta(t, 20*PyeongToSquareMeter, *area.Range.Max, 1e-9)
}

func TestCompile_FloorExactAndRange(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())

	plan, err := c.Compile(context.Background(), Criteria{Floor: "5"}, AdminPolicy(), 10)
	require.NoError(t, err)
	require.Len(t, plan.Filters, 1)
	assert.Equal(t, FilterRange, plan.Filters[0].Kind)
	assert.True(t, plan.Filters[0].Range.Exact())

	plan, err = c.Compile(context.Background(), Criteria{Floor: "3이상"}, AdminPolicy(), 10)
	require.NoError(t, err)
	require.Len(t, plan.Filters, 1)
	assert.Nil(t, plan.Filters[0].Range.Max)
	assert.Equal(t, float64(3), *plan.Filters[0].Range.Min)
}

func TestCompile_UnparseableRangeIsDropped(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{Floor: "고층", AreaRange: "넓게"}, AdminPolicy(), 10)
	require.NoError(t, err)
	assert.Empty(t, plan.Filters)
}

func TestCompile_PolicyFiltersComeFirst(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{Keyword: "서울"}, MapPolicy(), 100)
	require.NoError(t, err)

	assert.Equal(t, []FilterKind{FilterEq, FilterNotIn, FilterContains}, kinds(plan.Filters))
}

func TestCompile_Pagination(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{Page: 3, Limit: 500}, AdminPolicy(), 10)
	require.NoError(t, err)

	assert.Equal(t, 3, plan.Page)
	assert.Equal(t, MaxPageSize, plan.Limit)
	assert.Equal(t, 2*MaxPageSize, plan.Offset)
}

func TestCompile_Popularity(t *testing.T) {
	t.Parallel()

	c := NewCompiler(newFakeResolver())
	plan, err := c.Compile(context.Background(), Criteria{Popularity: "인기"}, AdminPolicy(), 10)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	assert.Equal(t, Eq("popularity", "인기"), plan.Filters[0])
}
