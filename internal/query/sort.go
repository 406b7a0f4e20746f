package query

// Derived sort expressions. GREATEST picks the largest populated column, so
// rows with none populated sort as NULL and land where NullsFirst says.
// NULL-ignoring GREATEST and NULLS FIRST are Postgres semantics; the mysql
// driver switch in config covers the storage layer only, not these clauses.
const (
	maxPriceExpr = "GREATEST(sale_price, lump_sum_price, rental_price)"
	maxAreaExpr  = "GREATEST(actual_area, supply_area, land_area, building_area, total_area, net_leasable_area)"
)

// SortSpec is one resolved order clause.
type SortSpec struct {
	Expr       string
	Desc       bool
	NullsFirst bool
}

// ResolveSort maps a request sort key onto its order clause. Unknown or
// empty keys fall back to newest-first.
func ResolveSort(key string) SortSpec {
	switch key {
	case "popular", "popular-desc":
		return SortSpec{Expr: "views", Desc: true, NullsFirst: true}
	case "popular-asc":
		return SortSpec{Expr: "views", Desc: false, NullsFirst: true}
	case "price-desc":
		return SortSpec{Expr: maxPriceExpr, Desc: true, NullsFirst: true}
	case "price-asc":
		return SortSpec{Expr: maxPriceExpr, Desc: false, NullsFirst: true}
	case "area-desc":
		return SortSpec{Expr: maxAreaExpr, Desc: true, NullsFirst: true}
	case "area-asc":
		return SortSpec{Expr: maxAreaExpr, Desc: false, NullsFirst: true}
	case "latest":
		fallthrough
	default:
		return SortSpec{Expr: "created_at", Desc: true}
	}
}

// OrderClause renders the spec as an ORDER BY fragment.
func (s SortSpec) OrderClause() string {
	clause := s.Expr
	if s.Desc {
		clause += " DESC"
	} else {
		clause += " ASC"
	}
	if s.NullsFirst {
		clause += " NULLS FIRST"
	}
	return clause
}
