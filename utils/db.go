package utils

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arcadia-social/socialfeed-backend/model"
)

// GetDBConnection connects to the database configured in DB_CONFIG.
func GetDBConnection() (*gorm.DB, error) {
	dsn := os.Getenv("DB_CONFIG")
	if dsn == "" {
		return nil, errors.New("DB_CONFIG is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return db, nil
}

// GetTestingDBConnection connects to the testing server configured in
// TEST_DB_CONFIG. The DSN should not carry a dbname so that CreateTempDB can
// append one.
func GetTestingDBConnection() (*gorm.DB, error) {
	dsn := os.Getenv("TEST_DB_CONFIG")
	if dsn == "" {
		return nil, errors.New("TEST_DB_CONFIG is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to testing database")
	}
	return db, nil
}

// DatabaseSetupAndMigration migrates all tables of the data model.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Article{}, &model.Comment{})
}

// CreateTempDB creates a uniquely named database on the testing server,
// migrates it and registers a cleanup that drops it again. Each test gets an
// isolated store.
func CreateTempDB(t *testing.T) (*gorm.DB, string) {
	admin, err := GetTestingDBConnection()
	if err != nil {
		t.Fatal(err)
	}

	name := "temp_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	if err := admin.Exec(fmt.Sprintf("CREATE DATABASE %s", name)).Error; err != nil {
		t.Fatal(err)
	}

	dsn := os.Getenv("TEST_DB_CONFIG") + " dbname=" + name
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		admin.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", name))
		if adminDB, err := admin.DB(); err == nil {
			adminDB.Close()
		}
	})

	return db, name
}
