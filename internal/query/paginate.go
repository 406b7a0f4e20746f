package query

// MaxPageSize caps the page size regardless of what the client asks for.
const MaxPageSize = 100

// ClampPage forces the page number to at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit forces limit into [1, MaxPageSize], substituting def when the
// client sent nothing. Out-of-range values are clamped, never rejected.
func ClampLimit(limit, def int) int {
	if limit == 0 {
		limit = def
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// Window converts a page/limit pair into an offset window.
func Window(page, limit int) (offset, lim int) {
	page = ClampPage(page)
	return (page - 1) * limit, limit
}

// TotalPages is ceil(total/limit), with 0 for an empty result set. A page
// past the end is not an error; it just returns no rows.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
