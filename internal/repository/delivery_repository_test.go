package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/google/uuid"
)

func TestPgDeliveryRepository_RecordAndGet(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if testing.Short() || dbURL == "" {
		t.Skip("skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	repo := NewPgDeliveryRepository(pool)

	d := &model.Delivery{ID: uuid.NewString(), Status: model.DeliveryStatusFailed, Failure: "smtp"}
	if err := repo.Record(ctx, d); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if d.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set after Record")
	}

	found, err := repo.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found.Status != model.DeliveryStatusFailed || found.Failure != "smtp" {
		t.Errorf("unexpected record %+v", found)
	}

	if _, err := repo.Get(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNopDeliveryRepository(t *testing.T) {
	var repo DeliveryRepository = NopDeliveryRepository{}
	if err := repo.Record(context.Background(), &model.Delivery{ID: "x"}); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if _, err := repo.Get(context.Background(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
