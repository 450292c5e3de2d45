package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the relational store named by the DATABASE_URL connection
// string. postgres:// (or postgresql://) URLs use the postgres driver;
// anything else is treated as a MySQL DSN.
func Connect(databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = mysql.Open(databaseURL)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Column{},
		&models.Content{},
		&models.Attachment{},
		&models.ProjectFolder{},
		&models.ProjectFile{},
		&models.YoutubeVideo{},
		&models.PublishedFinal{},
		&models.ScriptData{},
		&models.ScriptCorrelation{},
		&models.ScheduleEvent{},
		&models.ChatChannel{},
		&models.ChatChannelMember{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
