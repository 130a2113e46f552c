package registry

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/groupgen/groupgen/pkg/model"
)

// defaultCollection is the collection group documents live in when the
// caller doesn't override it.
const defaultCollection = "groups"

// Mongo is a registry backed by a MongoDB collection of group documents,
// one document per group, keyed by the group's name. This is the server
// path: uploaded libraries are stored once and exported many times.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo connects to uri and uses the named database. An empty
// collection name selects "groups".
func NewMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if collection == "" {
		collection = defaultCollection
	}
	return &Mongo{coll: client.Database(database).Collection(collection)}, nil
}

// NewMongoCollection wraps an existing collection. Useful for tests and
// for callers that manage the client themselves.
func NewMongoCollection(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

// Lookup fetches the group document with the given name. Snapshots are
// validated on the way out so a corrupt document cannot reach the
// generator.
func (m *Mongo) Lookup(ctx context.Context, name string) (*model.Group, error) {
	var g model.Group
	err := m.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}
	if err := model.Validate(&g); err != nil {
		return nil, fmt.Errorf("stored group %q: %w", name, err)
	}
	return &g, nil
}

// Names lists all stored group names, sorted for determinism.
func (m *Mongo) Names(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "name", Value: 1}}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode group name: %w", err)
		}
		names = append(names, doc.Name)
	}
	return names, cur.Err()
}

// Store upserts a group document by name. The server's library upload
// endpoint feeds it; the export engine itself never writes.
func (m *Mongo) Store(ctx context.Context, g *model.Group) error {
	if err := model.Validate(g); err != nil {
		return err
	}
	_, err := m.coll.ReplaceOne(ctx,
		bson.D{{Key: "name", Value: g.Name}},
		g,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store group %q: %w", g.Name, err)
	}
	return nil
}

// Disconnect closes the underlying client connection.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.coll.Database().Client().Disconnect(ctx)
}

var (
	_ Registry = (*Mongo)(nil)
	_ Storer   = (*Mongo)(nil)
)
