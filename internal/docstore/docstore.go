package docstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrNotFound is returned for lookups, updates and deletes that match no
// document.
var ErrNotFound = errors.New("document not found")

type Options struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store is a thin collection-scoped adapter over the remote document
// database. Documents are bson maps keyed by an opaque string _id; callers
// decide what the id looks like (uuid for listings, store-assigned for
// users).
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Doc pairs a document with its id, for operations that scan or query
// rather than address a known id.
type Doc struct {
	ID   string
	Data bson.M
}

func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	// Decode embedded documents as bson.M (not bson.D) and datetimes as
	// time.Time, so documents walk and serialize like plain JSON.
	registry := bson.NewRegistry()
	registry.RegisterTypeMapEntry(bsontype.EmbeddedDocument, reflect.TypeOf(bson.M{}))
	registry.RegisterTypeMapEntry(bsontype.DateTime, reflect.TypeOf(time.Time{}))

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.Timeout).
		SetRegistry(registry))
	if err != nil {
		return nil, fmt.Errorf("connect to document store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(opts.Database),
		logger: logger,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Get returns the document stored under id, without the _id key.
func (s *Store) Get(ctx context.Context, coll, id string) (bson.M, error) {
	var doc bson.M
	err := s.db.Collection(coll).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}

// Set writes doc under id, replacing any existing document.
func (s *Store) Set(ctx context.Context, coll, id string, doc bson.M) error {
	_, err := s.db.Collection(coll).ReplaceOne(ctx,
		bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// Update merges fields into the document under id ($set, shallow per
// field). ErrNotFound when the id does not exist.
func (s *Store) Update(ctx context.Context, coll, id string, fields bson.M) error {
	res, err := s.db.Collection(coll).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, coll, id string) error {
	res, err := s.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Insert stores doc under a store-assigned id and returns it.
func (s *Store) Insert(ctx context.Context, coll string, doc bson.M) (string, error) {
	id := primitive.NewObjectID().Hex()
	doc["_id"] = id
	if _, err := s.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return id, nil
}

// FindOneByField returns the first document whose field equals value.
func (s *Store) FindOneByField(ctx context.Context, coll, field string, value any) (Doc, error) {
	var doc bson.M
	err := s.db.Collection(coll).FindOne(ctx, bson.M{field: value}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Doc{}, ErrNotFound
	}
	if err != nil {
		return Doc{}, err
	}
	id, _ := doc["_id"].(string)
	delete(doc, "_id")
	return Doc{ID: id, Data: doc}, nil
}

// All streams every document in the collection. Full scans are how the
// listing service does name checks and summaries; collections here are
// small.
func (s *Store) All(ctx context.Context, coll string) ([]Doc, error) {
	cur, err := s.db.Collection(coll).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			s.logger.Warn("closing cursor", zap.String("collection", coll), zap.Error(cerr))
		}
	}()

	var out []Doc
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		id, _ := doc["_id"].(string)
		delete(doc, "_id")
		out = append(out, Doc{ID: id, Data: doc})
	}
	return out, cur.Err()
}
