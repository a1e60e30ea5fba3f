// Package listing carries the query options a list endpoint accepts:
// exact-match field filters and a free-text search term. Each service
// decides which of the two it honors.
package listing

// Options narrows a list call. Filters are exact, case-sensitive field
// matches applied by the repository; Search is a case-insensitive
// substring term applied by the service.
type Options struct {
	Filters map[string]string
	Search  string
}

// Filter returns the value of an exact-match filter, or "" when unset.
func (o *Options) Filter(field string) string {
	if o == nil || o.Filters == nil {
		return ""
	}
	return o.Filters[field]
}
