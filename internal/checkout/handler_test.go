package checkout

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithCheckoutHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v, "email": c.Get("X-User-Email"), "role": c.Get("X-User-Role")}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCheckoutRoutes(t *testing.T) {
	fx := newFixture(nil)
	app := makeAppWithCheckoutHandler(NewHandler(fx.svc))

	send := func(method, path, body string) (int, string) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", shopper.UID)
		req.Header.Set("X-User-Email", shopper.Email)
		res, _ := app.Test(req)
		b, _ := io.ReadAll(res.Body)
		return res.StatusCode, string(b)
	}

	res, _ := app.Test(httptest.NewRequest("POST", "/api/v1/checkout", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	status, body := send("POST", "/api/v1/checkout", "")
	if status != fiber.StatusConflict || !strings.Contains(body, `"redirect":"/cart"`) {
		t.Fatalf("expected redirect for empty cart, got %d %s", status, body)
	}

	fx.carts.Cart(shopper).AddItem(saree, "")
	if status, _ := send("POST", "/api/v1/checkout", ""); status != fiber.StatusOK {
		t.Fatalf("begin failed: %d", status)
	}
	if status, _ := send("POST", "/api/v1/checkout/continue", ""); status != fiber.StatusConflict {
		t.Fatalf("expected continue blocked without address, got %d", status)
	}

	addr := `{"address":{"name":"Asha","phone":"9876543210","houseNo":"12B","roadName":"MG Road","city":"Pune","state":"Maharashtra","pinCode":"411001"}}`
	if status, body := send("POST", "/api/v1/checkout/address", addr); status != fiber.StatusOK || !strings.Contains(body, `"selectedAddressId"`) {
		t.Fatalf("add address failed: %d %s", status, body)
	}
	send("POST", "/api/v1/checkout/continue", "")
	send("POST", "/api/v1/checkout/payment", `{"mode":"online","method":"upi"}`)

	if status, _ := send("POST", "/api/v1/checkout/upi/verify", `{"upiId":"no-at-sign"}`); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid UPI, got %d", status)
	}
	send("POST", "/api/v1/checkout/upi/verify", `{"upiId":"asha@okbank"}`)

	status, body = send("POST", "/api/v1/checkout/place", "")
	if status != fiber.StatusOK {
		t.Fatalf("place failed: %d %s", status, body)
	}
	var st State
	json.Unmarshal([]byte(body), &st)
	if st.Step != StepConfirmation || st.Order == nil || st.Order.TotalAmount != 1299 || st.Order.UserEmail != shopper.Email {
		t.Fatalf("unexpected confirmation %+v", st)
	}

	if status, _ := send("DELETE", "/api/v1/checkout", ""); status != fiber.StatusNoContent {
		t.Fatalf("reset failed: %d", status)
	}
	if status, _ := send("GET", "/api/v1/checkout", ""); status != fiber.StatusNotFound {
		t.Fatalf("expected 404 after reset, got %d", status)
	}
}
