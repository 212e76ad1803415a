// Package query builds the parameterized listing queries served by the
// reviews and comments endpoints.
//
// Only two kinds of user input reach a listing query:
//   - values (filter value, limit, offset), which are always bound as
//     positional parameters;
//   - identifiers (sort column, sort direction), which are never copied from
//     the request. The request only selects an entry of a Whitelist or of the
//     Direction enum, and the SQL text comes from that entry.
//
// The package is pure: it never touches storage. Callers execute the
// resulting Statement.
package query

import (
	"fmt"
	"regexp"
)

// identRE restricts whitelist entries to plain lower-case SQL identifiers.
var identRE = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Whitelist is an immutable, ordered set of sortable column names plus the
// column used when a request names none. The zero value is empty and rejects
// every column.
type Whitelist struct {
	cols []string
	set  map[string]struct{}
	def  string
}

// NewWhitelist builds a whitelist. def must be one of cols, and every column
// must be a plain identifier.
func NewWhitelist(def string, cols ...string) (Whitelist, error) {
	w := Whitelist{
		cols: make([]string, 0, len(cols)),
		set:  make(map[string]struct{}, len(cols)),
		def:  def,
	}
	for _, c := range cols {
		if !identRE.MatchString(c) {
			return Whitelist{}, fmt.Errorf("query: invalid sort column %q", c)
		}
		if _, dup := w.set[c]; dup {
			continue
		}
		w.set[c] = struct{}{}
		w.cols = append(w.cols, c)
	}
	if _, ok := w.set[def]; !ok {
		return Whitelist{}, fmt.Errorf("query: default sort column %q not in whitelist", def)
	}
	return w, nil
}

// MustWhitelist is like NewWhitelist but panics on error. It is meant for
// package-level defaults built from literals.
func MustWhitelist(def string, cols ...string) Whitelist {
	w, err := NewWhitelist(def, cols...)
	if err != nil {
		panic(err)
	}
	return w
}

// Contains reports whether col may be used for sorting.
func (w Whitelist) Contains(col string) bool {
	_, ok := w.set[col]
	return ok
}

// Columns returns a copy of the permitted columns in declaration order.
func (w Whitelist) Columns() []string {
	out := make([]string, len(w.cols))
	copy(out, w.cols)
	return out
}

// Default is the sort column applied when none is requested.
func (w Whitelist) Default() string { return w.def }

// reviewSortColumns lists every column a review listing can be sorted by.
var reviewSortColumns = []string{
	"review_id", "owner", "title", "category", "created_at", "votes", "designer", "comment_count",
}

// ReviewSortColumns returns the full set of sortable review columns.
func ReviewSortColumns() []string {
	out := make([]string, len(reviewSortColumns))
	copy(out, reviewSortColumns)
	return out
}

// DefaultReviewWhitelist is the whitelist used when configuration does not
// narrow it.
func DefaultReviewWhitelist() Whitelist {
	return MustWhitelist("created_at", reviewSortColumns...)
}

// DefaultCommentWhitelist is the whitelist for comment listings.
func DefaultCommentWhitelist() Whitelist {
	return MustWhitelist("created_at", "comment_id", "author", "votes", "created_at")
}
