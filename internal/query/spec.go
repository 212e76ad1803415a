package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tbourn/game-reviews-api/internal/apperr"
)

// Query-string keys understood by ParseListSpec.
const (
	ParamCategory = "category"
	ParamSortBy   = "sort_by"
	ParamOrder    = "order"
	ParamLimit    = "limit"
	ParamPage     = "p"
)

// Direction is the sort order of a listing.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultDirection applies when a request names no order.
const DefaultDirection = Desc

// ParseDirection accepts "asc" or "desc" in any letter case. A blank token
// yields the zero Direction (meaning "use the default"); anything else is an
// InvalidSortQuery.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", apperr.InvalidSortQuery("order must be asc or desc, got %q", s)
}

// keyword returns the SQL keyword for d. Only the two enum values can reach
// query text.
func (d Direction) keyword() string {
	if d == Asc {
		return "ASC"
	}
	return "DESC"
}

// ListSpec is the normalized form of a listing request. It is built per
// request and discarded afterwards.
type ListSpec struct {
	// FilterValue is an equality filter on the resource's filter column. The
	// empty string means "no filter".
	FilterValue string
	// SortColumn must belong to the resource whitelist; empty means default.
	SortColumn string
	// Order is the sort direction; empty means DefaultDirection.
	Order Direction
	// Limit and Page are nil when absent from the request.
	Limit *int
	Page  *int
}

// ParseListSpec reads the listing parameters from a query string.
//
// Blank values are treated as absent. A limit or page that is not an
// integer is rejected with InvalidQueryValue; an unknown order token with
// InvalidSortQuery. The sort column is not checked here because the
// whitelist depends on the resource being listed.
func ParseListSpec(v url.Values) (ListSpec, error) {
	spec := ListSpec{
		FilterValue: strings.TrimSpace(v.Get(ParamCategory)),
		SortColumn:  strings.TrimSpace(v.Get(ParamSortBy)),
	}

	dir, err := ParseDirection(v.Get(ParamOrder))
	if err != nil {
		return ListSpec{}, err
	}
	spec.Order = dir

	if spec.Limit, err = optionalInt(v, ParamLimit); err != nil {
		return ListSpec{}, err
	}
	if spec.Page, err = optionalInt(v, ParamPage); err != nil {
		return ListSpec{}, err
	}
	return spec, nil
}

func optionalInt(v url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.InvalidQueryValue("%s must be an integer, got %q", key, raw)
	}
	return &n, nil
}
