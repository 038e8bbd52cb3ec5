package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"benign_fashion_backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// --- Variables Globales ---
var (
	DB          *gorm.DB
	Redis       *redis.Client
	RedisClient *redis.Client // Alias pour compatibilité
)

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Initialiser MySQL
	if err := ConnectMySQL(); err != nil {
		log.Fatal().Err(err).Msg("❌ Échec initialisation MySQL")
	}

	// 2. Initialiser Redis
	connectRedis(ctx)

	log.Info().Msg("✅ Toutes les bases de données sont connectées")
}

// =============================================
// MYSQL (GORM)
// =============================================

// ConnectMySQL ouvre la connexion GORM et migre le schéma
func ConnectMySQL() error {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("MYSQL_USER"),
			os.Getenv("MYSQL_PASSWORD"),
			os.Getenv("MYSQL_HOST"),
			os.Getenv("MYSQL_DATABASE"),
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connexion MySQL impossible: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	DB = db
	log.Info().Msg("✅ Connecté à MySQL")

	return Migrate(db)
}

// Migrate crée/complète les tables du shop
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.OrderMaster{},
		&models.OrderDetail{},
	)
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	RedisClient = Redis // Alias pour compatibilité

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("❌ Erreur connexion Redis")
	}
	log.Info().Msg("✅ Connecté à Redis")
}
