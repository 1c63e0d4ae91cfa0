// Package store persists sighting and GPS documents in MongoDB.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourorg/wildlife-sightings/internal/retry"
)

const (
	databaseName        = "wildlife_db"
	sightingsCollection = "sightings"
	gpsCollection       = "gps_tracking"

	pingTimeout = 10 * time.Second
)

// ErrNotFound indicates no document matched the query.
var ErrNotFound = errors.New("not found")

// Store wraps a shared mongo client. Safe for concurrent use.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB under the given retry loop. The ping runs inside the
// loop so a store that is still starting up is waited for rather than treated
// as fatal; exhausting the loop is fatal to the caller.
func Connect(ctx context.Context, uri string, loop *retry.Loop) (*Store, error) {
	var client *mongo.Client
	err := loop.Run(ctx, func(ctx context.Context) error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := c.Ping(pingCtx, nil); err != nil {
			_ = c.Disconnect(ctx)
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Store{client: client, db: client.Database(databaseName)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Reads strip the database-internal identifier; record shapes exposed to
// clients must never carry it.
var (
	findNoID    = options.Find().SetProjection(bson.M{"_id": 0})
	findOneNoID = options.FindOne().SetProjection(bson.M{"_id": 0})
)

func (s *Store) InsertSighting(ctx context.Context, doc bson.M) error {
	_, err := s.db.Collection(sightingsCollection).InsertOne(ctx, doc)
	return err
}

func (s *Store) ListSightings(ctx context.Context) ([]bson.M, error) {
	cur, err := s.db.Collection(sightingsCollection).Find(ctx, bson.M{}, findNoID)
	if err != nil {
		return nil, err
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetSighting looks up a sighting by its application-level id field.
func (s *Store) GetSighting(ctx context.Context, id string) (bson.M, error) {
	var doc bson.M
	err := s.db.Collection(sightingsCollection).FindOne(ctx, bson.M{"id": id}, findOneNoID).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) InsertGPS(ctx context.Context, doc bson.M) error {
	_, err := s.db.Collection(gpsCollection).InsertOne(ctx, doc)
	return err
}

// ListGPSSince returns pings with timestamp strictly after cutoff. No sort is
// applied; callers get insertion order at best.
func (s *Store) ListGPSSince(ctx context.Context, cutoff time.Time) ([]bson.M, error) {
	filter := bson.M{"timestamp": bson.M{"$gt": cutoff}}
	cur, err := s.db.Collection(gpsCollection).Find(ctx, filter, findNoID)
	if err != nil {
		return nil, err
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
