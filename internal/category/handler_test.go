package category

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/logging"
)

func TestCategoriesRoute(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), logging.Discard())
	if err := svc.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := svc.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	app := fiber.New()
	NewHandler(svc).RegisterPublicRoutes(app)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/categories?limit=3", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var got []Category
	json.NewDecoder(res.Body).Decode(&got)
	if len(got) != 3 || got[0].Name != "Sarees" {
		t.Fatalf("unexpected categories %v", got)
	}

	all := svc.List(context.Background(), 100)
	if len(all) != len(Defaults) {
		t.Fatalf("seeding twice duplicated rows: %d", len(all))
	}
}

func TestPostgresListFailureIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM category").WithArgs(100).WillReturnError(errors.New("no such table"))
	svc := NewService(NewPostgresRepository(db), logging.Discard())
	if got := svc.List(context.Background(), 100); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}

	mock.ExpectQuery("FROM category").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image", "ord"}).AddRow("1", "Sarees", "img", 8).AddRow("2", "Kurtis", "img", 7))
	if got := svc.List(context.Background(), 2); len(got) != 2 {
		t.Fatalf("expected 2 categories, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
