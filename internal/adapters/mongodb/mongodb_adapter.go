package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// MongoDBAdapter implements the DatabaseAdapter interface for MongoDB
type MongoDBAdapter struct {
	client      *mongo.Client
	db          *mongo.Database
	config      *ports.MongoDBConfig
	catalogRepo ports.CatalogRepository
	kitRepo     ports.KitRepository
}

// NewMongoDBAdapter creates a new MongoDB database adapter
func NewMongoDBAdapter(config *ports.MongoDBConfig) *MongoDBAdapter {
	return &MongoDBAdapter{
		config: config,
	}
}

// Connect establishes a connection to the MongoDB database
func (a *MongoDBAdapter) Connect(ctx context.Context) error {
	clientOpts := options.Client().ApplyURI(a.config.URI)

	// Configure connection pool
	if a.config.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(uint64(a.config.MaxPoolSize))
	}
	if a.config.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(uint64(a.config.MinPoolSize))
	}
	if a.config.MaxConnIdleTime > 0 {
		clientOpts.SetMaxConnIdleTime(time.Duration(a.config.MaxConnIdleTime) * time.Second)
	}
	if a.config.ServerTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(time.Duration(a.config.ServerTimeout) * time.Second)
	}
	if a.config.SocketTimeout > 0 {
		clientOpts.SetSocketTimeout(time.Duration(a.config.SocketTimeout) * time.Second)
	}

	// Set read preference
	if a.config.ReadPreference != "" {
		switch a.config.ReadPreference {
		case "primary":
			clientOpts.SetReadPreference(readpref.Primary())
		case "secondary":
			clientOpts.SetReadPreference(readpref.Secondary())
		case "primaryPreferred":
			clientOpts.SetReadPreference(readpref.PrimaryPreferred())
		case "secondaryPreferred":
			clientOpts.SetReadPreference(readpref.SecondaryPreferred())
		}
	}

	// Set write concern
	if a.config.WriteConcern != "" {
		switch a.config.WriteConcern {
		case "majority":
			clientOpts.SetWriteConcern(writeconcern.Majority())
		}
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	a.client = client
	a.db = client.Database(a.config.Database)

	a.catalogRepo = NewCatalogRepository(a.db)
	a.kitRepo = NewKitRepository(a.db)

	// Create indexes
	if err = a.createIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// Disconnect closes the database connection
func (a *MongoDBAdapter) Disconnect(ctx context.Context) error {
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

// Ping checks if the database connection is alive
func (a *MongoDBAdapter) Ping(ctx context.Context) error {
	if a.client == nil {
		return fmt.Errorf("database not connected")
	}
	return a.client.Ping(ctx, nil)
}

// GetType returns the database type
func (a *MongoDBAdapter) GetType() ports.DatabaseType {
	return ports.DatabaseTypeMongoDB
}

// GetCatalogRepository returns the catalog repository
func (a *MongoDBAdapter) GetCatalogRepository() ports.CatalogRepository {
	return a.catalogRepo
}

// GetKitRepository returns the kit repository
func (a *MongoDBAdapter) GetKitRepository() ports.KitRepository {
	return a.kitRepo
}

// HealthCheck performs a health check on the database
func (a *MongoDBAdapter) HealthCheck(ctx context.Context) error {
	if err := a.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	// Test a simple query
	_, err := a.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("health check query failed: %w", err)
	}

	return nil
}

// GetConnectionStats returns database connection statistics
func (a *MongoDBAdapter) GetConnectionStats() ports.ConnectionStats {
	if a.client == nil {
		return ports.ConnectionStats{DatabaseType: string(ports.DatabaseTypeMongoDB)}
	}
	healthy := a.Ping(context.Background()) == nil

	return ports.ConnectionStats{
		OpenConnections:  -1, // MongoDB driver doesn't expose this easily
		IdleConnections:  -1,
		MaxConnections:   a.config.MaxPoolSize,
		DatabaseType:     string(ports.DatabaseTypeMongoDB),
		ConnectionString: a.config.Database, // Don't expose full URI
		Healthy:          healthy,
	}
}

// OptimizeDatabase performs database optimization operations
func (a *MongoDBAdapter) OptimizeDatabase(ctx context.Context) error {
	collections := []string{equipmentCollection, kitCollection}

	for _, collection := range collections {
		var result bson.M
		err := a.db.RunCommand(ctx, bson.D{
			{Key: "compact", Value: collection},
		}).Decode(&result)
		if err != nil {
			return fmt.Errorf("failed to compact collection %s: %w", collection, err)
		}
	}

	return nil
}

// createIndexes creates the secondary indexes behind category listing and
// kit lookups by equipment
func (a *MongoDBAdapter) createIndexes(ctx context.Context) error {
	equipmentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "_id", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "mount", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "updated_at", Value: -1}},
		},
	}

	if _, err := a.db.Collection(equipmentCollection).Indexes().CreateMany(ctx, equipmentIndexes); err != nil {
		return fmt.Errorf("failed to create equipment indexes: %w", err)
	}

	kitIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "entries.equipment_id", Value: 1}},
		},
	}

	if _, err := a.db.Collection(kitCollection).Indexes().CreateMany(ctx, kitIndexes); err != nil {
		return fmt.Errorf("failed to create kit indexes: %w", err)
	}

	return nil
}
