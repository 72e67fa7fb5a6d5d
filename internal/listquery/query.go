// Package listquery turns list endpoint query parameters into a Mongo filter,
// sort and page window. It does no I/O.
package listquery

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	FieldName      = "name"
	FieldCreatedAt = "created_at"
	FieldPrice     = "price"
	FieldQuantity  = "quantity"
)

type Query struct {
	Keyword string

	// CreatedFrom/CreatedTo bound created_at as [from, to); both zero means no range.
	CreatedFrom time.Time
	CreatedTo   time.Time

	Ascending bool
	Price     int // -1 desc, 1 asc, 0 unset
	Quantity  int

	Page  int
	limit int
}

type parseOptions struct {
	numericSort bool
}

type Option func(*parseOptions)

// WithNumericSort honours the price and quantity sort overrides. Only
// entities that carry those fields should enable it.
func WithNumericSort() Option {
	return func(o *parseOptions) { o.numericSort = true }
}

// Parse reads keyword, date, month, year, sort, page and limit, plus price
// and quantity under WithNumericSort. now supplies the year for a bare month filter.
func Parse(v url.Values, now time.Time, opts ...Option) Query {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	q := Query{
		Keyword:   strings.TrimSpace(v.Get("keyword")),
		Ascending: v.Get("sort") == "asc",
		Page:      1,
	}
	if o.numericSort {
		q.Price = direction(v.Get("price"))
		q.Quantity = direction(v.Get("quantity"))
	}
	q.CreatedFrom, q.CreatedTo = createdRange(v.Get("date"), v.Get("month"), v.Get("year"), now)

	if n, err := strconv.Atoi(v.Get("limit")); err == nil && n > 0 {
		q.limit = n
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	return q
}

func direction(s string) int {
	switch s {
	case "asc":
		return 1
	case "desc":
		return -1
	}
	return 0
}

// createdRange applies date, then month (of year when given, else of now's year),
// then year alone. Unparseable values are ignored.
func createdRange(date, month, year string, now time.Time) (time.Time, time.Time) {
	if date != "" {
		if d, err := time.Parse("2006-01-02", date); err == nil {
			return d, d.AddDate(0, 0, 1)
		}
	}

	y, yErr := strconv.Atoi(year)
	validYear := yErr == nil && y > 0 && y < 10000

	if m, err := strconv.Atoi(month); err == nil && m >= 1 && m <= 12 {
		if !validYear {
			y = now.UTC().Year()
		}
		from := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	}

	if validYear {
		from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0)
	}
	return time.Time{}, time.Time{}
}

func (q Query) Filter() bson.M {
	f := bson.M{}
	if q.Keyword != "" {
		f[FieldName] = bson.M{"$regex": regexp.QuoteMeta(q.Keyword), "$options": "i"}
	}
	if !q.CreatedFrom.IsZero() {
		f[FieldCreatedAt] = bson.M{"$gte": q.CreatedFrom, "$lt": q.CreatedTo}
	}
	return f
}

// Sort: created_at by default, price overrides it, quantity overrides price.
// _id breaks ties in the same direction.
func (q Query) Sort() bson.D {
	field, dir := FieldCreatedAt, -1
	if q.Ascending {
		dir = 1
	}
	if q.Price != 0 {
		field, dir = FieldPrice, q.Price
	}
	if q.Quantity != 0 {
		field, dir = FieldQuantity, q.Quantity
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func (q Query) Paginated() bool { return q.limit > 0 }

// Limit is zero when the query is unpaginated.
func (q Query) Limit() int64 { return int64(q.limit) }

func (q Query) Skip() int64 {
	if !q.Paginated() {
		return 0
	}
	return int64(q.Page-1) * int64(q.limit)
}

// WithLimit returns a copy paginated by n; n <= 0 makes it unpaginated.
func (q Query) WithLimit(n int) Query {
	if n < 0 {
		n = 0
	}
	q.limit = n
	return q
}

type Result[T any] struct {
	Count       int
	TotalPages  int
	CurrentPage int
	Paginated   bool
	Items       []T
}

// NewResult wraps one page of items; total is the number of matching records.
func NewResult[T any](items []T, total int64, q Query) Result[T] {
	if items == nil {
		items = []T{}
	}
	r := Result[T]{Count: len(items), Items: items, Paginated: q.Paginated()}
	if r.Paginated {
		r.CurrentPage = q.Page
		r.TotalPages = int(math.Ceil(float64(total) / float64(q.limit)))
	}
	return r
}

// Body renders the response envelope with items under key, e.g. "categories".
func (r Result[T]) Body(key string) map[string]any {
	body := map[string]any{
		"success": true,
		"count":   r.Count,
		key:       r.Items,
	}
	if r.Paginated {
		body["totalPages"] = r.TotalPages
		body["currentPage"] = r.CurrentPage
	}
	return body
}
