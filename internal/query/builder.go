package query

import (
	"strings"

	"github.com/tbourn/game-reviews-api/internal/apperr"
)

// Statement is a ready-to-execute parameterized query. Placeholders are "?"
// (GORM rewrites them for dialects that use $n).
type Statement struct {
	SQL  string
	Args []any
	Page Page
}

// Condition is an equality predicate on a fixed, trusted column.
type Condition struct {
	Column string
	Value  any
}

// Eq builds a Condition. column must come from code, never from a request.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Value: value}
}

// Resource describes one listable collection: where it is selected from,
// how it is grouped, which column the optional filter applies to, and how
// whitelist names map to SQL sort expressions.
type Resource struct {
	// Table is the primary table; unqualified sort columns are prefixed with it.
	Table string
	// Select is the projection, including derived columns.
	Select []string
	// From is the FROM target including any fixed join.
	From string
	// GroupBy is the grouping key for aggregated projections; empty for none.
	GroupBy string
	// FilterColumn receives ListSpec.FilterValue; empty disables filtering.
	FilterColumn string
	// SortExprs overrides the SQL expression for whitelist entries that are
	// not plain columns of Table (e.g. aggregate aliases).
	SortExprs map[string]string
}

// ReviewsResource lists reviews with their comment count and the total
// number of reviews matching the filter before pagination.
var ReviewsResource = Resource{
	Table: "reviews",
	Select: []string{
		"reviews.review_id",
		"reviews.title",
		"reviews.category",
		"reviews.designer",
		"reviews.owner",
		"reviews.review_body",
		"reviews.review_img_url",
		"reviews.created_at",
		"reviews.votes",
		"COUNT(comments.comment_id) AS comment_count",
		"COUNT(*) OVER () AS total_reviews",
	},
	From:         "reviews LEFT JOIN comments ON comments.review_id = reviews.review_id",
	GroupBy:      "reviews.review_id",
	FilterColumn: "reviews.category",
	SortExprs:    map[string]string{"comment_count": "comment_count"},
}

// CommentsResource lists comments with the total number of comments in scope.
var CommentsResource = Resource{
	Table: "comments",
	Select: []string{
		"comments.comment_id",
		"comments.body",
		"comments.review_id",
		"comments.author",
		"comments.votes",
		"comments.created_at",
		"COUNT(*) OVER () AS total_comments",
	},
	From: "comments",
}

func (r Resource) sortExpr(col string) string {
	if e, ok := r.SortExprs[col]; ok {
		return e
	}
	return r.Table + "." + col
}

// Assembler turns a ListSpec into a Statement for one Resource.
type Assembler struct {
	Resource  Resource
	Whitelist Whitelist
	Paginator Paginator
}

// Assemble validates spec and builds the listing query. scope conditions are
// always applied (e.g. the parent review of a comment listing); the ListSpec's
// filter value is applied only when non-empty.
//
// Validation happens before anything is built, so a rejected spec never
// reaches storage.
func (a Assembler) Assemble(spec ListSpec, scope ...Condition) (Statement, error) {
	col := spec.SortColumn
	if col == "" {
		col = a.Whitelist.Default()
	}
	if !a.Whitelist.Contains(col) {
		return Statement{}, apperr.InvalidSortQuery("cannot sort by %q", spec.SortColumn)
	}
	dir := spec.Order
	if dir == "" {
		dir = DefaultDirection
	}
	page, err := a.Paginator.Paginate(spec.Limit, spec.Page)
	if err != nil {
		return Statement{}, err
	}

	clauses := []clause{
		where{conds: a.conditions(spec, scope)},
		groupBy{key: a.Resource.GroupBy},
		orderBy{expr: a.Resource.sortExpr(col), dir: dir},
		limit{n: page.Limit},
		offset{n: page.Offset},
	}
	sql, args := render("SELECT "+strings.Join(a.Resource.Select, ", ")+" FROM "+a.Resource.From, clauses)
	return Statement{SQL: sql, Args: args, Page: page}, nil
}

// Count builds a COUNT(*) over the same filtered set Assemble would list,
// ignoring sort and pagination. Callers use it when a page comes back empty
// and the per-row total is therefore unavailable.
func (a Assembler) Count(spec ListSpec, scope ...Condition) Statement {
	sql, args := render("SELECT COUNT(*) FROM "+a.Resource.Table, []clause{where{conds: a.conditions(spec, scope)}})
	return Statement{SQL: sql, Args: args}
}

func (a Assembler) conditions(spec ListSpec, scope []Condition) []Condition {
	conds := make([]Condition, 0, len(scope)+1)
	conds = append(conds, scope...)
	if a.Resource.FilterColumn != "" && spec.FilterValue != "" {
		conds = append(conds, Eq(a.Resource.FilterColumn, spec.FilterValue))
	}
	return conds
}

// clause is one fragment of a statement. Inactive clauses write nothing.
type clause interface {
	write(sb *strings.Builder, args []any) []any
}

func render(head string, clauses []clause) (string, []any) {
	var sb strings.Builder
	sb.WriteString(head)
	var args []any
	for _, c := range clauses {
		args = c.write(&sb, args)
	}
	sb.WriteString(";")
	return sb.String(), args
}

type where struct{ conds []Condition }

func (w where) write(sb *strings.Builder, args []any) []any {
	for i, c := range w.conds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.Column)
		sb.WriteString(" = ?")
		args = append(args, c.Value)
	}
	return args
}

type groupBy struct{ key string }

func (g groupBy) write(sb *strings.Builder, args []any) []any {
	if g.key != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(g.key)
	}
	return args
}

type orderBy struct {
	expr string
	dir  Direction
}

func (o orderBy) write(sb *strings.Builder, args []any) []any {
	sb.WriteString(" ORDER BY ")
	sb.WriteString(o.expr)
	sb.WriteString(" ")
	sb.WriteString(o.dir.keyword())
	return args
}

type limit struct{ n int }

func (l limit) write(sb *strings.Builder, args []any) []any {
	sb.WriteString(" LIMIT ?")
	return append(args, l.n)
}

type offset struct{ n int }

func (o offset) write(sb *strings.Builder, args []any) []any {
	sb.WriteString(" OFFSET ?")
	return append(args, o.n)
}
