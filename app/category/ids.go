package category

import "strconv"

// ListPath is the category list route every mutating operation redirects to.
const ListPath = "/categories"

// parseCategoryID parses the raw :id path segment. A non-numeric id matches
// no row, so callers treat a false return exactly like a missing category.
func parseCategoryID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
