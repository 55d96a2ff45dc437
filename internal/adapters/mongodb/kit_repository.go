package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

const kitCollection = "kits"

// kitRepository implements ports.KitRepository using MongoDB.
// A kit and its entries are one document, so saves are atomic.
type kitRepository struct {
	collection *mongo.Collection
}

// NewKitRepository creates a new MongoDB kit repository
func NewKitRepository(db *mongo.Database) ports.KitRepository {
	return &kitRepository{
		collection: db.Collection(kitCollection),
	}
}

// Get retrieves a kit with its entries
func (r *kitRepository) Get(ctx context.Context, id string) (*models.Kit, error) {
	var kit models.Kit

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&kit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get kit: %w", err)
	}

	if kit.Entries == nil {
		kit.Entries = []models.InventoryEntry{}
	}
	return &kit, nil
}

// Save inserts or replaces a kit document
func (r *kitRepository) Save(ctx context.Context, kit *models.Kit) error {
	now := time.Now().UTC()
	entries := kit.Entries
	if entries == nil {
		entries = []models.InventoryEntry{}
	}

	update := bson.M{
		"$set": bson.M{
			"name":       kit.Name,
			"entries":    entries,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"created_at": 1, "updated_at": 1})

	var stored models.Kit
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": kit.ID}, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("failed to save kit: %w", err)
	}

	kit.CreatedAt = stored.CreatedAt
	kit.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a kit
func (r *kitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete kit: %w", err)
	}

	if result.DeletedCount == 0 {
		return ports.ErrNotFound
	}

	return nil
}

// List retrieves kit headers without entries
func (r *kitRepository) List(ctx context.Context, offset, limit int) ([]*models.Kit, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"entries": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list kits: %w", err)
	}
	defer cursor.Close(ctx)

	var kits []*models.Kit
	if err := cursor.All(ctx, &kits); err != nil {
		return nil, fmt.Errorf("failed to decode kits: %w", err)
	}

	return kits, nil
}
