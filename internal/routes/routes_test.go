package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/trades-market/trades_market/internal/config"
	"github.com/trades-market/trades_market/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{
		AppName:            "TradesMarket",
		AppEnv:             "development",
		Port:               "8000",
		SecretKey:          "test-secret",
		LoginRatePerMinute: 5,
	}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

// doRequest performs a JSON request against the app and returns the status
// code and raw body. Password hashing makes some requests slow, so the
// test timeout is generous.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, raw
}

func registerUser(t *testing.T, app *fiber.App, name, email, role string) string {
	t.Helper()
	status, body := doRequest(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "hunter2!",
		"role":     role,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register %s: expected %d got %d (%s)", email, fiber.StatusCreated, status, body)
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if out.Token == "" || out.User.ID == "" {
		t.Fatalf("incomplete register response: %s", body)
	}
	if out.User.Role != role {
		t.Fatalf("expected role %q, got %q", role, out.User.Role)
	}
	return out.Token
}

func decodeID(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode id: %v (%s)", err, body)
	}
	if out.ID == "" {
		t.Fatalf("missing id in response: %s", body)
	}
	return out.ID
}

func TestRootBanner(t *testing.T) {
	app := newTestApp(t)

	status, body := doRequest(t, app, fiber.MethodGet, "/", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, status)
	}
	if !strings.Contains(string(body), "Trades Marketplace API is running") {
		t.Fatalf("unexpected banner: %s", body)
	}
}

func TestDiagnosticsWithoutDatabase(t *testing.T) {
	app := newTestApp(t)

	status, body := doRequest(t, app, fiber.MethodGet, "/test", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, status)
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode diagnostics: %v", err)
	}
	if out["backend"] != "running" {
		t.Fatalf("unexpected backend status %v", out["backend"])
	}
	if out["database"] != "not available" {
		t.Fatalf("unexpected database status %v", out["database"])
	}
}

func TestTradesVocabulary(t *testing.T) {
	app := newTestApp(t)

	status, body := doRequest(t, app, fiber.MethodGet, "/trades", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, status)
	}
	if !strings.Contains(string(body), "plumber") || !strings.Contains(string(body), "electrician") {
		t.Fatalf("unexpected trades: %s", body)
	}
}

func TestMarketplaceJourney(t *testing.T) {
	app := newTestApp(t)

	providerToken := registerUser(t, app, "Juma", "juma@example.com", "provider")
	requesterToken := registerUser(t, app, "Alice", "alice@example.com", "requester")

	// Provider publishes a listing.
	status, body := doRequest(t, app, fiber.MethodPost, "/providers", providerToken, fiber.Map{
		"name":        "Juma Plumbing",
		"trade":       "plumber",
		"city":        "Nairobi",
		"hourly_rate": 1500,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create listing: expected %d got %d (%s)", fiber.StatusCreated, status, body)
	}
	listingID := decodeID(t, body)

	// Role and auth guards on publishing.
	status, _ = doRequest(t, app, fiber.MethodPost, "/providers", requesterToken, fiber.Map{
		"name": "Nope", "trade": "plumber",
	})
	if status != fiber.StatusForbidden {
		t.Fatalf("requester publish: expected %d got %d", fiber.StatusForbidden, status)
	}
	status, _ = doRequest(t, app, fiber.MethodPost, "/providers", "", fiber.Map{
		"name": "Nope", "trade": "plumber",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("anonymous publish: expected %d got %d", fiber.StatusUnauthorized, status)
	}

	// Anyone can browse listings.
	status, body = doRequest(t, app, fiber.MethodGet, "/providers?trade=plumber", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list providers: expected %d got %d", fiber.StatusOK, status)
	}
	var listings []map[string]any
	if err := json.Unmarshal(body, &listings); err != nil {
		t.Fatalf("decode listings: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0]["rating"] != 4.8 {
		t.Fatalf("expected default rating 4.8, got %v", listings[0]["rating"])
	}

	status, _ = doRequest(t, app, fiber.MethodGet, "/providers/"+listingID, "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("get listing: expected %d got %d", fiber.StatusOK, status)
	}

	// Requester posts a job.
	status, body = doRequest(t, app, fiber.MethodPost, "/requests", requesterToken, fiber.Map{
		"name":   "Alice",
		"email":  "alice@example.com",
		"trade":  "plumber",
		"title":  "Fix leaking sink",
		"budget": 2000,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create request: expected %d got %d (%s)", fiber.StatusCreated, status, body)
	}

	// Providers browse jobs; requesters cannot.
	status, body = doRequest(t, app, fiber.MethodGet, "/requests", providerToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("browse jobs: expected %d got %d", fiber.StatusOK, status)
	}
	var jobs []map[string]any
	if err := json.Unmarshal(body, &jobs); err != nil {
		t.Fatalf("decode jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0]["title"] != "Fix leaking sink" {
		t.Fatalf("unexpected jobs: %s", body)
	}
	status, _ = doRequest(t, app, fiber.MethodGet, "/requests", requesterToken, nil)
	if status != fiber.StatusForbidden {
		t.Fatalf("requester browse jobs: expected %d got %d", fiber.StatusForbidden, status)
	}

	// Requester leaves a review; aggregates update.
	status, body = doRequest(t, app, fiber.MethodPost, "/reviews", requesterToken, fiber.Map{
		"provider_id": listingID,
		"name":        "Alice",
		"rating":      5,
		"comment":     "Quick and tidy.",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create review: expected %d got %d (%s)", fiber.StatusCreated, status, body)
	}

	status, body = doRequest(t, app, fiber.MethodGet, "/providers/"+listingID, "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("get listing: expected %d got %d", fiber.StatusOK, status)
	}
	var listing map[string]any
	if err := json.Unmarshal(body, &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing["rating"] != 5.0 {
		t.Fatalf("expected rating 5 after review, got %v", listing["rating"])
	}
	if listing["review_count"] != 1.0 {
		t.Fatalf("expected review count 1, got %v", listing["review_count"])
	}

	status, body = doRequest(t, app, fiber.MethodGet, "/providers/"+listingID+"/reviews", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list reviews: expected %d got %d", fiber.StatusOK, status)
	}
	var reviews []map[string]any
	if err := json.Unmarshal(body, &reviews); err != nil {
		t.Fatalf("decode reviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0]["rating"] != 5.0 {
		t.Fatalf("unexpected reviews: %s", body)
	}

	// Identity endpoint reflects the token's principal.
	status, body = doRequest(t, app, fiber.MethodGet, "/auth/me", providerToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("me: expected %d got %d", fiber.StatusOK, status)
	}
	if !strings.Contains(string(body), "juma@example.com") {
		t.Fatalf("unexpected me response: %s", body)
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "Juma", "juma@example.com", "provider")

	status, body := doRequest(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "juma@example.com",
		"password": "hunter2!",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login: expected %d got %d (%s)", fiber.StatusOK, status, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected token in login response")
	}

	status, _ = doRequest(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "juma@example.com",
		"password": "wrong",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("bad login: expected %d got %d", fiber.StatusUnauthorized, status)
	}

	status, _ = doRequest(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "hunter2!",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("unknown login: expected %d got %d", fiber.StatusUnauthorized, status)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "Juma", "juma@example.com", "provider")

	status, _ := doRequest(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"name":     "Second Juma",
		"email":    "juma@example.com",
		"password": "hunter2!",
		"role":     "provider",
	})
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate register: expected %d got %d", fiber.StatusConflict, status)
	}
}

func TestReviewUnknownProvider(t *testing.T) {
	app := newTestApp(t)
	requesterToken := registerUser(t, app, "Alice", "alice@example.com", "requester")

	status, _ := doRequest(t, app, fiber.MethodPost, "/reviews", requesterToken, fiber.Map{
		"provider_id": "b5f0a7b3-8f7a-4a93-b3cf-1f9ab9a1c001",
		"name":        "Alice",
		"rating":      4,
	})
	if status != fiber.StatusNotFound {
		t.Fatalf("review unknown provider: expected %d got %d", fiber.StatusNotFound, status)
	}
}
