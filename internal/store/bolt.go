package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.mongodb.org/mongo-driver/v2/bson"

	"itemd/internal/item"
)

type BoltOptions struct {
	// Bucket defaults to "items".
	Bucket string
	// Timeout for acquiring the file lock; defaults to 1s.
	Timeout time.Duration
}

// Bolt is an embedded single-file store. Keys are the raw 12 ObjectID bytes,
// so a cursor walk returns items in creation order.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

type boltDoc struct {
	Name string `json:"name"`
}

var errNoBucket = errors.New("bolt: items bucket missing")

func OpenBolt(path string, opts BoltOptions) (*Bolt, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}

	bucket := []byte(defaultCollection)
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bolt{db: db, bucket: bucket}, nil
}

func (s *Bolt) Insert(_ context.Context, name string) (item.Item, error) {
	id := bson.NewObjectID()
	val, err := json.Marshal(boltDoc{Name: name})
	if err != nil {
		return item.Item{}, err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errNoBucket
		}
		return b.Put(id[:], val)
	}); err != nil {
		return item.Item{}, err
	}
	return item.Item{ID: id.Hex(), Name: name}, nil
}

func (s *Bolt) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errNoBucket
		}
		return b.Delete(oid[:])
	})
}

func (s *Bolt) List(_ context.Context) ([]item.Item, error) {
	out := []item.Item{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errNoBucket
		}
		return b.ForEach(func(k, v []byte) error {
			var oid bson.ObjectID
			if len(k) != len(oid) {
				return nil
			}
			copy(oid[:], k)

			var doc boltDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			out = append(out, item.Item{ID: oid.Hex(), Name: doc.Name})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close takes a context only to match Mongo.Close.
func (s *Bolt) Close(_ context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
