package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ls-tech-blogs/internal/domain"
)

const historyCollection = "histories"

// HistoryRepository stores one document per user per UTC day in MongoDB.
type HistoryRepository interface {
	GetForDay(ctx context.Context, userID string, day time.Time) (*domain.History, error)
	// Save stores history only if nobody saved the day since it was read,
	// returning ErrStaleWrite otherwise. On success history.Version is bumped.
	Save(ctx context.Context, history *domain.History) error
	ListRecent(ctx context.Context, userID string, days int) ([]domain.History, error)
	Latest(ctx context.Context, userID string) (*domain.History, error)
}

type historyRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) HistoryRepository {
	return &historyRepository{coll: db.Collection(historyCollection)}
}

// EnsureHistoryIndexes creates the (user_id, date) unique index.
func EnsureHistoryIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(historyCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *historyRepository) GetForDay(ctx context.Context, userID string, day time.Time) (*domain.History, error) {
	var history domain.History
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "date": domain.DayStart(day)}).Decode(&history)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) Save(ctx context.Context, history *domain.History) error {
	filter := bson.M{"user_id": history.UserID, "date": history.Date, "version": history.Version}
	if history.Version == 0 {
		// documents written before versioning carry no field
		filter["version"] = bson.M{"$in": bson.A{0, nil}}
	}

	next := *history
	next.Version++
	// a filter miss upserts into the unique (user_id, date) index and fails there
	_, err := r.coll.ReplaceOne(ctx, filter, &next, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return ErrStaleWrite
	}
	if err != nil {
		return err
	}
	history.Version = next.Version
	return nil
}

func (r *historyRepository) ListRecent(ctx context.Context, userID string, days int) ([]domain.History, error) {
	opts := options.Find().SetSort(bson.M{"date": -1}).SetLimit(int64(days))
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var histories []domain.History
	if err := cursor.All(ctx, &histories); err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *historyRepository) Latest(ctx context.Context, userID string) (*domain.History, error) {
	var history domain.History
	opts := options.FindOne().SetSort(bson.M{"date": -1})
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "search_history.0": bson.M{"$exists": true}}, opts).Decode(&history)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}
