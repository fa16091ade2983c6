package testutils

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/internal/domain/user"
)

// OpenTestDB opens an isolated in-memory database with the full model
// set migrated. Each call gets its own database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&schema.FormSchema{},
		&schema.FieldDefinition{},
		&schema.ValidationRule{},
		&submission.Submission{},
		&submission.Value{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
