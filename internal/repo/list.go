package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tazhibayda/inventory-service/internal/listquery"
)

// List runs q against col. The total is counted only for paginated queries.
func List[T any](ctx context.Context, col *mongo.Collection, q listquery.Query) (res listquery.Result[T], err error) {
	span, ctx := startSpan(ctx, col.Name(), "list")
	defer func() { finish(span, err) }()

	filter := q.Filter()
	opts := options.Find().SetSort(q.Sort())

	var total int64
	if q.Paginated() {
		total, err = col.CountDocuments(ctx, filter)
		if err != nil {
			return res, err
		}
		opts.SetSkip(q.Skip()).SetLimit(q.Limit())
	}

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return res, err
	}
	defer cur.Close(ctx)

	var items []T
	if err := cur.All(ctx, &items); err != nil {
		return res, err
	}
	if !q.Paginated() {
		total = int64(len(items))
	}
	return listquery.NewResult(items, total, q), nil
}
