package query

import (
	"context"
	"strconv"
	"strings"
)

// Criteria is the parsed, immutable search input of one request. Empty
// string fields mean "no constraint".
type Criteria struct {
	Page         int
	Limit        int
	Keyword      string
	Theme        string
	PropertyType string
	BuyType      string
	Rooms        string
	Bathrooms    string
	Floor        string
	PriceRange   string
	AreaRange    string
	Popularity   string
	SortKey      string
}

// Plan is the compiled query: baseline + user predicates in order, a sort
// clause and a pagination window. The store layer executes it verbatim.
type Plan struct {
	Filters []Filter
	Sort    SortSpec
	Page    int
	Limit   int
	Offset  int
}

// Resolver maps human-readable category labels onto reference-table ids.
// Implementations hit the store; lookups are request-scoped.
type Resolver interface {
	PropertyTypeID(ctx context.Context, name string) (uint, bool, error)
	TransactionTypeID(ctx context.Context, name string) (uint, bool, error)
	// RoomOptionIDs matches option labels by prefix ("2" matches "2개").
	RoomOptionIDs(ctx context.Context, label string) ([]uint, error)
	BathroomOptionIDs(ctx context.Context, label string) ([]uint, error)
}

// priceColumnByType maps a transaction-type label onto the one price column
// it constrains. A price filter without a recognized label is a no-op.
var priceColumnByType = map[string]string{
	"매매":   "sale_price",
	"전세":   "lump_sum_price",
	"월세":   "rental_price",
	"단기임대": "rental_price",
}

// areaColumns are the fixed nullable area columns an area filter ORs over.
var areaColumns = []string{
	"actual_area",
	"supply_area",
	"land_area",
	"building_area",
	"total_area",
	"net_leasable_area",
}

// Compiler turns search criteria into query plans. It is stateless; one
// instance serves all requests.
type Compiler struct {
	resolver Resolver
}

func NewCompiler(resolver Resolver) *Compiler {
	return &Compiler{resolver: resolver}
}

// Compile assembles the plan: the policy's mandatory predicates first, then
// each user filter. Every filter step is independently skippable: a parse
// failure degrades that one field to "no constraint" and an unresolvable
// category label degrades to "matches nothing". Only store errors from the
// resolver abort compilation.
func (c *Compiler) Compile(ctx context.Context, crit Criteria, pol Policy, defaultLimit int) (Plan, error) {
	filters := append([]Filter{}, pol.Filters...)

	if kw := strings.TrimSpace(crit.Keyword); kw != "" {
		if id, ok := keywordID(kw); ok {
			filters = append(filters, Eq("id", id))
		} else {
			filters = append(filters, Contains("address", kw))
		}
	}

	if crit.Theme != "" {
		filters = append(filters, JSONHas("themes", crit.Theme))
	}

	if crit.PropertyType != "" {
		f, err := c.resolveEq(ctx, crit.PropertyType, "property_type_id", c.resolver.PropertyTypeID)
		if err != nil {
			return Plan{}, err
		}
		filters = append(filters, f)
	}

	if crit.BuyType != "" {
		f, err := c.resolveEq(ctx, crit.BuyType, "transaction_type_id", c.resolver.TransactionTypeID)
		if err != nil {
			return Plan{}, err
		}
		filters = append(filters, f)
	}

	if crit.Rooms != "" {
		f, err := c.resolveIn(ctx, crit.Rooms, "room_option_id", c.resolver.RoomOptionIDs)
		if err != nil {
			return Plan{}, err
		}
		filters = append(filters, f)
	}

	if crit.Bathrooms != "" {
		f, err := c.resolveIn(ctx, crit.Bathrooms, "bathroom_option_id", c.resolver.BathroomOptionIDs)
		if err != nil {
			return Plan{}, err
		}
		filters = append(filters, f)
	}

	if crit.Popularity != "" {
		filters = append(filters, Eq("popularity", crit.Popularity))
	}

	if crit.Floor != "" {
		r := ParseRange(crit.Floor, IntScalar, RangeOptions{})
		if !r.IsZero() {
			filters = append(filters, InRange("floor", r))
		}
	}

	// A price range binds to exactly one column, selected by the
	// transaction-type label. Without a recognized label there is nothing to
	// constrain.
	if crit.PriceRange != "" && crit.BuyType != "" {
		if column, ok := priceColumnByType[strings.TrimSpace(crit.BuyType)]; ok {
			r := ParseRange(crit.PriceRange, KoreanScalar, RangeOptions{})
			if !r.IsZero() {
				filters = append(filters, InRange(column, r))
			}
		}
	}

	if crit.AreaRange != "" {
		r := ParseRange(crit.AreaRange, FloatScalar, RangeOptions{
			UnitFactor:          PyeongToSquareMeter,
			ZeroMinOnUpperBound: true,
		})
		if !r.IsZero() {
			filters = append(filters, AnyColumnInRange(areaColumns, r))
		}
	}

	page := ClampPage(crit.Page)
	limit := ClampLimit(crit.Limit, defaultLimit)
	offset, limit := Window(page, limit)

	return Plan{
		Filters: filters,
		Sort:    ResolveSort(crit.SortKey),
		Page:    page,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// keywordID parses a keyword as a listing id. Only an all-digit string
// qualifies; anything else, including signed numbers, falls through to the
// address substring match.
func keywordID(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (c *Compiler) resolveEq(ctx context.Context, name, column string, lookup func(context.Context, string) (uint, bool, error)) (Filter, error) {
	id, found, err := lookup(ctx, strings.TrimSpace(name))
	if err != nil {
		return Filter{}, err
	}
	if !found {
		return AlwaysFalse(), nil
	}
	return Eq(column, id), nil
}

func (c *Compiler) resolveIn(ctx context.Context, label, column string, lookup func(context.Context, string) ([]uint, error)) (Filter, error) {
	ids, err := lookup(ctx, strings.TrimSpace(label))
	if err != nil {
		return Filter{}, err
	}
	if len(ids) == 0 {
		return AlwaysFalse(), nil
	}
	values := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	return In(column, values), nil
}
