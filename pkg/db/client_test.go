package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/pkg/db/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	dsn := "file:dbclient_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Brand{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewFromGorm(conn)
}

func TestWithTxCommits(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.Brand{ID: uuid.New(), Name: "acme"}).Error
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.Brand{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Brand{ID: uuid.New(), Name: "ghost"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.Brand{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, found %d rows", count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	client := newTestClient(t)
	name := "dupe"
	if err := client.DB().Create(&models.Brand{ID: uuid.New(), Name: name}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := client.DB().Create(&models.Brand{ID: uuid.New(), Name: name}).Error
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatalf("unique violation not detected: %v", err)
	}
}

func TestIsUniqueViolationTypedDriverErrors(t *testing.T) {
	pgxErr := fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	if !IsUniqueViolation(pgxErr, "") {
		t.Fatal("pgx unique violation not detected")
	}
	if !IsUniqueViolation(pgxErr, "users_email_key") {
		t.Fatal("pgx constraint match failed")
	}
	if IsUniqueViolation(pgxErr, "other_constraint") {
		t.Fatal("pgx constraint mismatch misclassified")
	}

	pqErr := fmt.Errorf("create: %w", &pq.Error{Code: "23505", Constraint: "users_email_key"})
	if !IsUniqueViolation(pqErr, "users_email_key") {
		t.Fatal("pq unique violation not detected")
	}

	foreignKey := fmt.Errorf("create: %w", &pgconn.PgError{Code: "23503"})
	if IsUniqueViolation(foreignKey, "") {
		t.Fatal("foreign key violation misclassified as unique")
	}
}

func TestIsSerializationFailure(t *testing.T) {
	if IsSerializationFailure(nil) {
		t.Fatal("nil must not be a serialization failure")
	}
	if !IsSerializationFailure(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"})) {
		t.Fatal("pgx serialization failure not detected")
	}
	if !IsSerializationFailure(fmt.Errorf("commit: %w", &pq.Error{Code: "40P01"})) {
		t.Fatal("pq deadlock not detected")
	}
	if !IsSerializationFailure(errors.New("ERROR: could not serialize access due to concurrent update")) {
		t.Fatal("expected message fallback detection")
	}
	if IsSerializationFailure(errors.New("unique violation")) {
		t.Fatal("unrelated error misclassified")
	}
}
