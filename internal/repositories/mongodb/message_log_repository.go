package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/rootments/whatsapp-notification-backend/internal/models"
	"github.com/rootments/whatsapp-notification-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageLogRepository implements the repositories.MessageLogRepository interface
type MessageLogRepository struct {
	collection *mongo.Collection
}

// NewMessageLogRepository creates a new MessageLogRepository
func NewMessageLogRepository(db *mongo.Database) repositories.MessageLogRepository {
	return &MessageLogRepository{
		collection: db.Collection("messagelogs"),
	}
}

// Create creates a new message log entry
func (r *MessageLogRepository) Create(ctx context.Context, log *models.MessageLog) error {
	log.CreatedAt = time.Now()
	log.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

// FindByBookingAndEvent finds the log for a (bookingNumber, eventType) pair
func (r *MessageLogRepository) FindByBookingAndEvent(ctx context.Context, bookingNumber, eventType string) (*models.MessageLog, error) {
	var log models.MessageLog
	err := r.collection.FindOne(ctx, bson.M{
		"bookingNumber": bookingNumber,
		"eventType":     eventType,
	}).Decode(&log)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// FindByBookingNumber finds all logs for a booking number
func (r *MessageLogRepository) FindByBookingNumber(ctx context.Context, bookingNumber string) ([]*models.MessageLog, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"bookingNumber": bookingNumber}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*models.MessageLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByStatus finds logs by status with pagination
func (r *MessageLogRepository) FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.MessageLog, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*models.MessageLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts all message logs
func (r *MessageLogRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes backing the duplicate guard. The unique
// compound index is the only thing standing between two near-simultaneous
// sends for the same booking and a duplicate log entry.
func (r *MessageLogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "bookingNumber", Value: 1},
				{Key: "eventType", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "bookingNumber", Value: 1}},
		},
	})
	return err
}
