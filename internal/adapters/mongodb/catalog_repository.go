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

const equipmentCollection = "equipment"

// catalogRepository implements ports.CatalogRepository using MongoDB.
// Documents are keyed by the equipment id.
type catalogRepository struct {
	collection *mongo.Collection
}

// NewCatalogRepository creates a new MongoDB catalog repository
func NewCatalogRepository(db *mongo.Database) ports.CatalogRepository {
	return &catalogRepository{
		collection: db.Collection(equipmentCollection),
	}
}

// Get retrieves a catalog entry by id
func (r *catalogRepository) Get(ctx context.Context, id string) (*models.EquipmentSpec, error) {
	var spec models.EquipmentSpec

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&spec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	return &spec, nil
}

// Upsert inserts or replaces a catalog entry, keeping the original created_at
func (r *catalogRepository) Upsert(ctx context.Context, spec *models.EquipmentSpec) error {
	update, err := upsertDocument(spec, time.Now().UTC())
	if err != nil {
		return err
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.EquipmentSpec
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": spec.ID}, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("failed to upsert equipment: %w", err)
	}

	spec.CreatedAt = stored.CreatedAt
	spec.UpdatedAt = stored.UpdatedAt
	return nil
}

// upsertDocument builds the $set/$setOnInsert update for a spec. Optional
// fields that are empty on the spec are unset so a replace clears them.
func upsertDocument(spec *models.EquipmentSpec, now time.Time) (bson.M, error) {
	raw, err := bson.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode equipment: %w", err)
	}

	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to encode equipment: %w", err)
	}
	delete(set, "_id")
	delete(set, "created_at")
	set["updated_at"] = now

	unset := bson.M{}
	for _, field := range optionalEquipmentFields {
		if _, ok := set[field]; !ok {
			unset[field] = ""
		}
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update, nil
}

var optionalEquipmentFields = []string{
	"subcategory", "name", "mount", "sensor_coverage", "weight_kg", "power",
	"battery_profile", "media_profile", "compatible_codecs", "dependencies",
	"compatibility_tags", "compatible_with", "specs",
}

// Delete removes a catalog entry
func (r *catalogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}

	if result.DeletedCount == 0 {
		return ports.ErrNotFound
	}

	return nil
}

// List retrieves catalog entries ordered by id with pagination
func (r *catalogRepository) List(ctx context.Context, offset, limit int) ([]*models.EquipmentSpec, error) {
	return r.find(ctx, bson.M{}, offset, limit)
}

// ListByCategory retrieves catalog entries of one category with pagination
func (r *catalogRepository) ListByCategory(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error) {
	return r.find(ctx, bson.M{"category": category}, offset, limit)
}

func (r *catalogRepository) find(ctx context.Context, filter bson.M, offset, limit int) ([]*models.EquipmentSpec, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer cursor.Close(ctx)

	var specs []*models.EquipmentSpec
	if err := cursor.All(ctx, &specs); err != nil {
		return nil, fmt.Errorf("failed to decode equipment: %w", err)
	}

	return specs, nil
}

// Snapshot returns the whole catalog ordered by id
func (r *catalogRepository) Snapshot(ctx context.Context) ([]models.EquipmentSpec, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	specs := []models.EquipmentSpec{}
	if err := cursor.All(ctx, &specs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}

	return specs, nil
}

// Count returns the number of catalog entries
func (r *catalogRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return count, nil
}
