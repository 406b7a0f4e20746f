package query

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FilterKind discriminates the ResolvedFilter variants.
type FilterKind int

const (
	// FilterEq matches a column exactly.
	FilterEq FilterKind = iota
	// FilterContains is a case-insensitive substring match.
	FilterContains
	// FilterIn is set membership.
	FilterIn
	// FilterNotIn excludes a value set.
	FilterNotIn
	// FilterRange bounds one column with >= and/or <=; an exact range
	// (min == max) collapses to equality.
	FilterRange
	// FilterAnyColumnRange applies the same bounds to several columns and
	// ORs them: a row matches when any populated column falls in range.
	FilterAnyColumnRange
	// FilterJSONHas matches rows whose JSON array column contains a value.
	FilterJSONHas
	// FilterAlwaysFalse matches nothing. Emitted when a categorical label
	// resolves to no reference row, so the query provably returns zero rows
	// instead of silently dropping the user's constraint.
	FilterAlwaysFalse
	// FilterDeletedOnly restricts to soft-deleted rows (trash views).
	FilterDeletedOnly
)

// Filter is one resolved predicate of a query plan. Exactly the fields that
// its Kind needs are set.
type Filter struct {
	Kind    FilterKind
	Column  string
	Columns []string
	Value   interface{}
	Values  []interface{}
	Range   Range
}

func Eq(column string, value interface{}) Filter {
	return Filter{Kind: FilterEq, Column: column, Value: value}
}

func Contains(column, needle string) Filter {
	return Filter{Kind: FilterContains, Column: column, Value: needle}
}

func In(column string, values []interface{}) Filter {
	return Filter{Kind: FilterIn, Column: column, Values: values}
}

func NotIn(column string, values []interface{}) Filter {
	return Filter{Kind: FilterNotIn, Column: column, Values: values}
}

func InRange(column string, r Range) Filter {
	return Filter{Kind: FilterRange, Column: column, Range: r}
}

func AnyColumnInRange(columns []string, r Range) Filter {
	return Filter{Kind: FilterAnyColumnRange, Columns: columns, Range: r}
}

func JSONHas(column, value string) Filter {
	return Filter{Kind: FilterJSONHas, Column: column, Value: value}
}

func AlwaysFalse() Filter {
	return Filter{Kind: FilterAlwaysFalse}
}

func DeletedOnly() Filter {
	return Filter{Kind: FilterDeletedOnly}
}

// ApplyFilters translates resolved filters into GORM clauses. This is the
// only place that knows store syntax; everything upstream works on Filter
// values.
func ApplyFilters(db *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		db = applyFilter(db, f)
	}
	return db
}

func applyFilter(db *gorm.DB, f Filter) *gorm.DB {
	switch f.Kind {
	case FilterEq:
		return db.Where(f.Column+" = ?", f.Value)

	case FilterContains:
		needle, _ := f.Value.(string)
		return db.Where("LOWER("+f.Column+") LIKE LOWER(?)", "%"+needle+"%")

	case FilterIn:
		if len(f.Values) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(f.Column+" IN ?", f.Values)

	case FilterNotIn:
		if len(f.Values) == 0 {
			return db
		}
		return db.Where(f.Column+" NOT IN ?", f.Values)

	case FilterRange:
		return applyRange(db, f.Column, f.Range)

	case FilterAnyColumnRange:
		return applyAnyColumnRange(db, f.Columns, f.Range)

	case FilterJSONHas:
		value, _ := f.Value.(string)
		return db.Where(datatypes.JSONArrayQuery(f.Column).Contains(value))

	case FilterAlwaysFalse:
		return db.Where("1 = 0")

	case FilterDeletedOnly:
		return db.Unscoped().Where("deleted_at IS NOT NULL")

	default:
		return db
	}
}

func applyRange(db *gorm.DB, column string, r Range) *gorm.DB {
	if r.IsZero() {
		return db
	}
	if r.Exact() {
		return db.Where(column+" = ?", *r.Min)
	}
	if r.Min != nil {
		db = db.Where(column+" >= ?", *r.Min)
	}
	if r.Max != nil {
		db = db.Where(column+" <= ?", *r.Max)
	}
	return db
}

// applyAnyColumnRange builds "(a >= ? AND a <= ?) OR (b >= ? AND b <= ?)..."
// over the given columns. Listings usually populate just one of the area
// columns, so matching any of them is the useful semantics.
func applyAnyColumnRange(db *gorm.DB, columns []string, r Range) *gorm.DB {
	if r.IsZero() || len(columns) == 0 {
		return db
	}

	var (
		parts []string
		args  []interface{}
	)

	for _, col := range columns {
		var conds []string
		if r.Exact() {
			conds = append(conds, col+" = ?")
			args = append(args, *r.Min)
		} else {
			if r.Min != nil {
				conds = append(conds, col+" >= ?")
				args = append(args, *r.Min)
			}
			if r.Max != nil {
				conds = append(conds, col+" <= ?")
				args = append(args, *r.Max)
			}
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(conds, " AND ")))
	}

	return db.Where("("+strings.Join(parts, " OR ")+")", args...)
}
