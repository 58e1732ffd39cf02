package database

import (
	"fmt"
	"log"
	"time"

	"emergency-bed-booking/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// Connect initializes and returns a GORM database connection. Connection
// attempts are retried with bounded backoff so a briefly unavailable
// database does not kill the process during startup ordering.
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.GinMode == "release" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	var db *gorm.DB
	var err error
	backoff := connectBackoff
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: gormLogger,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			log.Fatalf("Failed to connect to database after %d attempts: %v", connectAttempts, err)
		}
		log.Printf("Database connect attempt %d failed: %v - retrying in %s", attempt, err, backoff)
		time.Sleep(backoff)
		backoff *= 2
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Successfully connected to database")

	return db
}
