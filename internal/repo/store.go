package repo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
)

const UsersCollection = "users"

type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Store{Client: cli, DB: cli.Database(dbname)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

func nameIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_name"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	}
}

// EnsureIndexes creates the unique indexes that back the name/email pre-checks.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.DB.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	})
	if err != nil {
		return err
	}

	for _, k := range domain.Kinds {
		if _, err := s.DB.Collection(k.Collection()).Indexes().CreateMany(ctx, nameIndexes()); err != nil {
			return err
		}
	}

	products := append(nameIndexes(),
		mongo.IndexModel{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("category")},
		mongo.IndexModel{Keys: bson.D{{Key: "price", Value: 1}}, Options: options.Index().SetName("price")},
		mongo.IndexModel{Keys: bson.D{{Key: "quantity", Value: 1}}, Options: options.Index().SetName("quantity")},
	)
	_, err = s.DB.Collection(domain.ProductsCollection).Indexes().CreateMany(ctx, products)
	return err
}

func IsDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

var dupKeyRe = regexp.MustCompile(`dup key: \{ ?"?([A-Za-z0-9_.]+)"?:`)

// DupField extracts the offending field from a duplicate-key error, "" if unknown.
func DupField(err error) string {
	if err == nil {
		return ""
	}
	if m := dupKeyRe.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return ""
}

func startSpan(ctx context.Context, coll, op string) (ddtrace.Span, context.Context) {
	return tracer.StartSpanFromContext(ctx, "mongo."+coll+"."+op,
		tracer.SpanType("mongodb"),
		tracer.ResourceName(coll+"."+op),
	)
}

func finish(span ddtrace.Span, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = nil
	}
	span.Finish(tracer.WithError(err))
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any) (out *T, err error) {
	span, ctx := startSpan(ctx, col.Name(), "find_one")
	defer func() { finish(span, err) }()

	var v T
	err = col.FindOne(ctx, filter).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func insert(ctx context.Context, col *mongo.Collection, doc any) (id primitive.ObjectID, err error) {
	span, ctx := startSpan(ctx, col.Name(), "insert")
	defer func() { finish(span, err) }()

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ = res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func replaceByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID, doc any) (err error) {
	span, ctx := startSpan(ctx, col.Name(), "replace")
	defer func() { finish(span, err) }()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID) (err error) {
	span, ctx := startSpan(ctx, col.Name(), "delete")
	defer func() { finish(span, err) }()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func exists(ctx context.Context, col *mongo.Collection, filter any) (ok bool, err error) {
	span, ctx := startSpan(ctx, col.Name(), "count")
	defer func() { finish(span, err) }()

	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}
