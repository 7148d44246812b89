package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Mongo is set only when STORE_DRIVER=mongo.
var Mongo *mongo.Client

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// ConnectMongo opens the MongoDB client used for mood and risk records.
func ConnectMongo(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDBURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	Mongo = client
	slog.Info("mongodb connected", "database", cfg.MongoDBDatabase)
	return client.Database(cfg.MongoDBDatabase), nil
}

// Migrate runs AutoMigrate for the tables this service owns. Mood and risk
// tables are migrated only when they live in PostgreSQL.
func Migrate(cfg *config.Config) error {
	tables := []interface{}{
		&models.User{},
		&models.SupporterLink{},
		&models.VisibilitySettings{},
		&models.SystemLog{},
	}
	if cfg.StoreDriver != config.StoreDriverMongo {
		tables = append(tables, &models.MoodEntry{}, &models.RiskEvaluation{})
	}
	return DB.AutoMigrate(tables...)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func PingMongo(ctx context.Context) error {
	if Mongo == nil {
		return nil
	}
	return Mongo.Ping(ctx, nil)
}

func Close() {
	if sqlDB, err := DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	if Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := Mongo.Disconnect(ctx); err != nil {
			slog.Error("mongodb disconnect error", "error", err)
		}
	}
}
