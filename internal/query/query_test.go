package query

import (
	"math"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/tbourn/game-reviews-api/internal/apperr"
)

func intp(n int) *int { return &n }

func reviewsAssembler() Assembler {
	return Assembler{
		Resource:  ReviewsResource,
		Whitelist: DefaultReviewWhitelist(),
		Paginator: DefaultPaginator(),
	}
}

// --- Whitelist ---

func TestNewWhitelist_Validation(t *testing.T) {
	if _, err := NewWhitelist("votes", "title"); err == nil {
		t.Fatalf("default outside the set must be rejected")
	}
	if _, err := NewWhitelist("title", "title", "votes; DROP TABLE reviews"); err == nil {
		t.Fatalf("non-identifier column must be rejected")
	}
	w, err := NewWhitelist("title", "title", "votes", "title")
	if err != nil {
		t.Fatalf("NewWhitelist: %v", err)
	}
	if !reflect.DeepEqual(w.Columns(), []string{"title", "votes"}) {
		t.Fatalf("duplicates should collapse, got %v", w.Columns())
	}
}

func TestWhitelist_ColumnsIsACopy(t *testing.T) {
	w := DefaultReviewWhitelist()
	cols := w.Columns()
	cols[0] = "hacked"
	if w.Contains("hacked") || !w.Contains("review_id") {
		t.Fatalf("mutating Columns() must not affect the whitelist")
	}
}

func TestDefaultReviewWhitelist_Members(t *testing.T) {
	w := DefaultReviewWhitelist()
	for _, c := range []string{"review_id", "owner", "title", "category", "created_at", "votes", "designer", "comment_count"} {
		if !w.Contains(c) {
			t.Fatalf("expected %q to be sortable", c)
		}
	}
	for _, c := range []string{"review_body", "doesnotexist", ""} {
		if w.Contains(c) {
			t.Fatalf("%q must not be sortable", c)
		}
	}
	if w.Default() != "created_at" {
		t.Fatalf("default sort = %q", w.Default())
	}
}

// --- Direction / ParseListSpec ---

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{"": "", "asc": Asc, "ASC": Asc, " desc ": Desc}
	for in, want := range cases {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Fatalf("ParseDirection(%q) = (%q, %v)", in, got, err)
		}
	}
	if _, err := ParseDirection("sideways"); !apperr.IsKind(err, apperr.KindInvalidSortQuery) {
		t.Fatalf("bad order token should be InvalidSortQuery, got %v", err)
	}
}

func TestParseListSpec(t *testing.T) {
	v := url.Values{}
	v.Set("category", " dexterity ")
	v.Set("sort_by", "votes")
	v.Set("order", "asc")
	v.Set("limit", "5")
	v.Set("p", "2")

	spec, err := ParseListSpec(v)
	if err != nil {
		t.Fatalf("ParseListSpec: %v", err)
	}
	if spec.FilterValue != "dexterity" || spec.SortColumn != "votes" || spec.Order != Asc {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if spec.Limit == nil || *spec.Limit != 5 || spec.Page == nil || *spec.Page != 2 {
		t.Fatalf("unexpected limit/page: %+v", spec)
	}
}

func TestParseListSpec_BlankMeansAbsent(t *testing.T) {
	spec, err := ParseListSpec(url.Values{"category": {""}, "limit": {""}, "p": {" "}})
	if err != nil {
		t.Fatalf("ParseListSpec: %v", err)
	}
	if spec.FilterValue != "" || spec.Limit != nil || spec.Page != nil {
		t.Fatalf("blank params should be absent: %+v", spec)
	}
}

func TestParseListSpec_Errors(t *testing.T) {
	cases := []struct {
		v    url.Values
		kind apperr.Kind
	}{
		{url.Values{"limit": {"ten"}}, apperr.KindInvalidQueryValue},
		{url.Values{"p": {"two"}}, apperr.KindInvalidQueryValue},
		{url.Values{"order": {"up"}}, apperr.KindInvalidSortQuery},
	}
	for _, tc := range cases {
		if _, err := ParseListSpec(tc.v); !apperr.IsKind(err, tc.kind) {
			t.Fatalf("%v: got %v; want kind %s", tc.v, err, tc.kind)
		}
	}
}

// --- Paginator ---

func TestPaginate_OffsetFormula(t *testing.T) {
	p := Paginator{DefaultLimit: 10}
	for limit := 1; limit <= 25; limit += 6 {
		for page := 1; page <= 7; page++ {
			got, err := p.Paginate(intp(limit), intp(page))
			if err != nil {
				t.Fatalf("Paginate(%d,%d): %v", limit, page, err)
			}
			if got.Limit != limit || got.Offset != limit*(page-1) || got.Number != page {
				t.Fatalf("Paginate(%d,%d) = %+v", limit, page, got)
			}
		}
	}
}

func TestPaginate_Defaults(t *testing.T) {
	got, err := DefaultPaginator().Paginate(nil, nil)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if got != (Page{Limit: 10, Offset: 0, Number: 1}) {
		t.Fatalf("defaults = %+v", got)
	}
	got, _ = DefaultPaginator().Paginate(intp(7), nil)
	if got.Offset != 0 {
		t.Fatalf("page omitted must give offset 0, got %d", got.Offset)
	}
}

func TestPaginate_ClampAndReject(t *testing.T) {
	p := Paginator{DefaultLimit: 10, MaxLimit: 50}
	got, err := p.Paginate(intp(500), intp(3))
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if got.Limit != 50 || got.Offset != 100 {
		t.Fatalf("clamped page = %+v", got)
	}
	for _, bad := range [][2]*int{{intp(0), nil}, {intp(-2), nil}, {nil, intp(0)}, {nil, intp(-1)}} {
		if _, err := p.Paginate(bad[0], bad[1]); !apperr.IsKind(err, apperr.KindInvalidQueryValue) {
			t.Fatalf("expected InvalidQueryValue, got %v", err)
		}
	}
}

func TestPaginate_HugePageSaturatesOffset(t *testing.T) {
	p := DefaultPaginator()
	for _, tc := range []struct{ limit, page int }{
		{10, 922337203685477582},
		{100, math.MaxInt},
		{1, math.MaxInt},
	} {
		got, err := p.Paginate(intp(tc.limit), intp(tc.page))
		if err != nil {
			t.Fatalf("Paginate(%d,%d): %v", tc.limit, tc.page, err)
		}
		if got.Offset < 0 {
			t.Fatalf("Paginate(%d,%d) offset overflowed to %d", tc.limit, tc.page, got.Offset)
		}
		if tc.limit > 1 && got.Offset != math.MaxInt {
			t.Fatalf("Paginate(%d,%d) offset = %d; want saturated", tc.limit, tc.page, got.Offset)
		}
		if got.Number != tc.page {
			t.Fatalf("page number = %d; want %d", got.Number, tc.page)
		}
	}
}

func TestPaginate_Pure(t *testing.T) {
	p := DefaultPaginator()
	a, _ := p.Paginate(intp(4), intp(3))
	b, _ := p.Paginate(intp(4), intp(3))
	if a != b {
		t.Fatalf("identical input gave %+v and %+v", a, b)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{{13, 5, 3}, {10, 5, 2}, {0, 5, 0}, {1, 10, 1}, {5, 0, 0}}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d,%d) = %d; want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

// --- Assembler ---

func TestAssemble_Defaults(t *testing.T) {
	st, err := reviewsAssembler().Assemble(ListSpec{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if strings.Contains(st.SQL, "WHERE") {
		t.Fatalf("no filter expected: %s", st.SQL)
	}
	if !strings.Contains(st.SQL, "GROUP BY reviews.review_id ORDER BY reviews.created_at DESC LIMIT ? OFFSET ?;") {
		t.Fatalf("unexpected tail: %s", st.SQL)
	}
	if !strings.Contains(st.SQL, "COUNT(comments.comment_id) AS comment_count") || !strings.Contains(st.SQL, "COUNT(*) OVER () AS total_reviews") {
		t.Fatalf("derived columns missing: %s", st.SQL)
	}
	if !reflect.DeepEqual(st.Args, []any{10, 0}) {
		t.Fatalf("args = %v", st.Args)
	}
}

func TestAssemble_FilterSortOrderPage(t *testing.T) {
	spec := ListSpec{FilterValue: "dexterity", SortColumn: "category", Order: Asc, Limit: intp(5), Page: intp(3)}
	st, err := reviewsAssembler().Assemble(spec)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := "SELECT " + strings.Join(ReviewsResource.Select, ", ") +
		" FROM reviews LEFT JOIN comments ON comments.review_id = reviews.review_id" +
		" WHERE reviews.category = ? GROUP BY reviews.review_id ORDER BY reviews.category ASC LIMIT ? OFFSET ?;"
	if st.SQL != want {
		t.Fatalf("SQL mismatch\n got: %s\nwant: %s", st.SQL, want)
	}
	if !reflect.DeepEqual(st.Args, []any{"dexterity", 5, 10}) {
		t.Fatalf("args = %v", st.Args)
	}
	if st.Page != (Page{Limit: 5, Offset: 10, Number: 3}) {
		t.Fatalf("page = %+v", st.Page)
	}
}

func TestAssemble_CommentCountUsesAlias(t *testing.T) {
	st, err := reviewsAssembler().Assemble(ListSpec{SortColumn: "comment_count"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !strings.Contains(st.SQL, "ORDER BY comment_count DESC") {
		t.Fatalf("SQL = %s", st.SQL)
	}
}

func TestAssemble_RejectsUnknownSort(t *testing.T) {
	for _, col := range []string{"doesnotexist", "review_body", "votes; DROP TABLE reviews", "VOTES"} {
		_, err := reviewsAssembler().Assemble(ListSpec{SortColumn: col})
		if !apperr.IsKind(err, apperr.KindInvalidSortQuery) {
			t.Fatalf("sort %q: expected InvalidSortQuery, got %v", col, err)
		}
	}
}

func TestAssemble_UserTextNeverInSQL(t *testing.T) {
	evil := "x' OR '1'='1"
	st, err := reviewsAssembler().Assemble(ListSpec{FilterValue: evil})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if strings.Contains(st.SQL, evil) {
		t.Fatalf("filter value leaked into SQL: %s", st.SQL)
	}
	if st.Args[0] != evil {
		t.Fatalf("filter value should be the first bound arg, got %v", st.Args)
	}
}

func TestAssemble_InjectedWhitelist(t *testing.T) {
	a := reviewsAssembler()
	a.Whitelist = MustWhitelist("votes", "votes")
	if _, err := a.Assemble(ListSpec{SortColumn: "title"}); !apperr.IsKind(err, apperr.KindInvalidSortQuery) {
		t.Fatalf("narrowed whitelist should reject title, got %v", err)
	}
	st, err := a.Assemble(ListSpec{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !strings.Contains(st.SQL, "ORDER BY reviews.votes DESC") {
		t.Fatalf("injected default not used: %s", st.SQL)
	}
}

func TestAssemble_CommentsScope(t *testing.T) {
	a := Assembler{Resource: CommentsResource, Whitelist: DefaultCommentWhitelist(), Paginator: DefaultPaginator()}
	// FilterValue is ignored for a resource without a filter column.
	st, err := a.Assemble(ListSpec{FilterValue: "ignored", Limit: intp(2)}, Eq("comments.review_id", int64(3)))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := "SELECT " + strings.Join(CommentsResource.Select, ", ") +
		" FROM comments WHERE comments.review_id = ? ORDER BY comments.created_at DESC LIMIT ? OFFSET ?;"
	if st.SQL != want {
		t.Fatalf("SQL mismatch\n got: %s\nwant: %s", st.SQL, want)
	}
	if !reflect.DeepEqual(st.Args, []any{int64(3), 2, 0}) {
		t.Fatalf("args = %v", st.Args)
	}
}

func TestCount(t *testing.T) {
	a := reviewsAssembler()
	st := a.Count(ListSpec{FilterValue: "strategy", SortColumn: "votes", Limit: intp(1)})
	if st.SQL != "SELECT COUNT(*) FROM reviews WHERE reviews.category = ?;" {
		t.Fatalf("SQL = %s", st.SQL)
	}
	if !reflect.DeepEqual(st.Args, []any{"strategy"}) {
		t.Fatalf("args = %v", st.Args)
	}
	if got := a.Count(ListSpec{}).SQL; got != "SELECT COUNT(*) FROM reviews;" {
		t.Fatalf("unfiltered count SQL = %s", got)
	}
}
