package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"itemd/internal/item"
)

const (
	defaultDatabase   = "test"
	defaultCollection = "items"
)

type MongoConfig struct {
	URI string
	// Database overrides the database named in URI.
	Database    string
	Collection  string
	PingTimeout time.Duration
}

// Mongo stores items as {_id: ObjectID, name: string} documents.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDoc struct {
	ID   bson.ObjectID `bson:"_id"`
	Name string        `bson:"name"`
}

// OpenMongo connects and pings the deployment; the client is disconnected
// again if the ping fails.
func OpenMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: connection string is empty")
	}

	dbName := cfg.Database
	if dbName == "" {
		name, err := databaseFromURI(cfg.URI)
		if err != nil {
			return nil, err
		}
		dbName = name
	}
	collName := cfg.Collection
	if collName == "" {
		collName = defaultCollection
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Mongo{
		client: client,
		coll:   client.Database(dbName).Collection(collName),
	}, nil
}

func newMongoDoc(name string) mongoDoc {
	return mongoDoc{ID: bson.NewObjectID(), Name: name}
}

func (d mongoDoc) toItem() item.Item {
	return item.Item{ID: d.ID.Hex(), Name: d.Name}
}

func (m *Mongo) Insert(ctx context.Context, name string) (item.Item, error) {
	doc := newMongoDoc(name)
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return item.Item{}, err
	}
	return doc.toItem(), nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	return err
}

func (m *Mongo) List(ctx context.Context) ([]item.Item, error) {
	cur, err := m.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]item.Item, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toItem())
	}
	return out, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

func databaseFromURI(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	if cs.Database == "" {
		return defaultDatabase, nil
	}
	return cs.Database, nil
}
