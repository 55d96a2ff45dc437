package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsdfat8/kitcheck/internal/adapters/memory"
	"github.com/hsdfat8/kitcheck/internal/adapters/mongodb"
	"github.com/hsdfat8/kitcheck/internal/adapters/postgres"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

func TestCreateAdapter(t *testing.T) {
	f := NewDatabaseAdapterFactory()

	adapter, err := f.CreateAdapter(&ports.DatabaseConfig{Type: ports.DatabaseTypeMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.MemoryAdapter{}, adapter)

	adapter, err = f.CreateAdapter(CreateDefaultConfig(ports.DatabaseTypePostgreSQL))
	require.NoError(t, err)
	assert.IsType(t, &postgres.PostgresAdapter{}, adapter)

	adapter, err = f.CreateAdapter(CreateDefaultConfig(ports.DatabaseTypeMongoDB))
	require.NoError(t, err)
	assert.IsType(t, &mongodb.MongoDBAdapter{}, adapter)

	_, err = f.CreateAdapter(&ports.DatabaseConfig{Type: ports.DatabaseTypePostgreSQL})
	assert.Error(t, err)

	_, err = f.CreateAdapter(&ports.DatabaseConfig{Type: "sqlite"})
	assert.Error(t, err)
}

func TestCreateAndConnectMemory(t *testing.T) {
	adapter, err := NewDatabaseAdapterFactory().CreateAndConnectAdapter(context.Background(), &ports.DatabaseConfig{})
	require.NoError(t, err)
	assert.Equal(t, ports.DatabaseTypeMemory, adapter.GetType())
	assert.NoError(t, adapter.HealthCheck(context.Background()))
}

func TestValidateConfig(t *testing.T) {
	f := NewDatabaseAdapterFactory()

	tests := []struct {
		name    string
		config  *ports.DatabaseConfig
		wantErr bool
	}{
		{name: "nil", config: nil, wantErr: true},
		{name: "memory", config: &ports.DatabaseConfig{Type: ports.DatabaseTypeMemory}},
		{name: "default postgres", config: CreateDefaultConfig(ports.DatabaseTypePostgreSQL)},
		{name: "default mongodb", config: CreateDefaultConfig(ports.DatabaseTypeMongoDB)},
		{
			name: "postgres idle above open",
			config: &ports.DatabaseConfig{Type: ports.DatabaseTypePostgreSQL, PostgresConfig: &ports.PostgresConfig{
				Host: "db", Port: 5432, User: "kitcheck", Database: "kitcheck", MaxOpenConns: 2, MaxIdleConns: 5,
			}},
			wantErr: true,
		},
		{
			name: "mongodb missing uri",
			config: &ports.DatabaseConfig{Type: ports.DatabaseTypeMongoDB, MongoDBConfig: &ports.MongoDBConfig{
				Database: "kitcheck", MaxPoolSize: 10,
			}},
			wantErr: true,
		},
		{name: "unknown", config: &ports.DatabaseConfig{Type: "oracle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.ValidateConfig(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
