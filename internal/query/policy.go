package query

// Policy is the baseline predicate set for a call site. Its filters are
// prepended to the user-supplied ones and can never be overridden by request
// input. The soft-delete baseline ("deleted_at IS NULL") is enforced by the
// store layer's soft-delete scope except for trash views, which flip it via
// FilterDeletedOnly.
type Policy struct {
	Name    string
	Filters []Filter
}

// PublicPolicy covers the public list and detail endpoints: row must not be
// hidden. Address disclosure is handled in the projection (redaction), not
// by dropping rows.
func PublicPolicy() Policy {
	return Policy{
		Name: "public",
		Filters: []Filter{
			Eq("visible", true),
		},
	}
}

// MapPolicy covers the map endpoint, where the address itself is the
// payload: listings with a private or excluded address are dropped outright.
func MapPolicy() Policy {
	return Policy{
		Name: "map",
		Filters: []Filter{
			Eq("visible", true),
			NotIn("address_disclosure", []interface{}{"private", "exclude"}),
		},
	}
}

// AdminPolicy covers the back-office list: hidden listings are included,
// only the soft-delete baseline applies.
func AdminPolicy() Policy {
	return Policy{Name: "admin"}
}

// TrashPolicy inverts the soft-delete baseline for the back-office trash
// view.
func TrashPolicy() Policy {
	return Policy{
		Name: "trash",
		Filters: []Filter{
			DeletedOnly(),
		},
	}
}
