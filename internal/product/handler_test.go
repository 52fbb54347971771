package product

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func makeAppWithProductHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func TestProductRoutes(t *testing.T) {
	svc := newTestService(NewInMemoryRepository(SeedCatalog(time.Now())))
	app := makeAppWithProductHandler(NewHandler(svc))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, p := range []string{"/api/v1/products", "/api/v1/products/:id", "/api/v1/admin/products/:id/image"} {
		if !routes[p] {
			t.Fatalf("expected %s registered", p)
		}
	}

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products?category=Sarees&sort=price-asc", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var got []Product
	json.NewDecoder(res.Body).Decode(&got)
	if len(got) == 0 || got[0].Category != "Sarees" {
		t.Fatalf("unexpected listing %v", got)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/101", nil))
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || !strings.Contains(string(b), "Kanjivaram") {
		t.Fatalf("unexpected product response %d %s", res.StatusCode, string(b))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/999", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestAdminProductLifecycle(t *testing.T) {
	svc := newTestService(NewInMemoryRepository(nil))
	app := makeAppWithProductHandler(NewHandler(svc))

	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(`{"title":"","price":-5}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusBadRequest || !strings.Contains(string(b), "title is required") {
		t.Fatalf("expected validation errors, got %d %s", res.StatusCode, string(b))
	}

	req = httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(`{"title":"Silk Saree","price":1299,"originalPrice":2999,"category":"Sarees","stockQuantity":4}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var created Product
	json.NewDecoder(res.Body).Decode(&created)

	req = httptest.NewRequest("PUT", "/api/v1/admin/products/"+created.ID, strings.NewReader(`{"title":"Silk Saree","price":999,"originalPrice":2999,"category":"Sarees"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || !strings.Contains(string(b), `"price":999`) {
		t.Fatalf("unexpected update response %d %s", res.StatusCode, string(b))
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, _ := mw.CreateFormFile("file", "saree.jpg")
	fw.Write([]byte("jpeg-bytes"))
	mw.Close()
	req = httptest.NewRequest("POST", "/api/v1/admin/products/"+created.ID+"/image", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || !strings.Contains(string(b), "/uploads/") {
		t.Fatalf("unexpected upload response %d %s", res.StatusCode, string(b))
	}

	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/products/"+created.ID, nil))
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/products/"+created.ID, nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res.StatusCode)
	}
}
