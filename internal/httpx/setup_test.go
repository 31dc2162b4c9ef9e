package httpx

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/safar/storefront-api/internal/config"
	"github.com/safar/storefront-api/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testAPI struct {
	db     *sql.DB
	server *httptest.Server
}

func setupTestAPI(t *testing.T) (*testAPI, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:14-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := postgres.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := postgres.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	uploads := config.UploadConfig{
		Dir:           t.TempDir(),
		PublicBaseURL: "http://localhost:8080",
	}

	router := NewRouter()
	(&CatalogHandler{DB: db}).Register(router)
	(&AccountHandler{DB: db, Uploads: uploads}).Register(router)
	(&OrderHandler{DB: db}).Register(router)
	(&ReviewHandler{DB: db}).Register(router)
	(&NewsHandler{DB: db}).Register(router)
	(&AdminHandler{DB: db}).Register(router)

	server := httptest.NewServer(router)

	cleanup := func() {
		server.Close()
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
		if err := postgres.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return &testAPI{db: db, server: server}, cleanup
}

// do issues a JSON request against the test server and decodes the
// response body into out (skipped when out is nil).
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Decode %s %s response: %v", method, path, err)
		}
	}

	return resp.StatusCode
}

func (a *testAPI) createProduct(t *testing.T, title, price string, stock int) int64 {
	t.Helper()

	var resp struct {
		ProductID int64 `json:"productId"`
	}
	status := a.do(t, http.MethodPost, "/admin/products", map[string]interface{}{
		"title": title,
		"price": price,
		"stock": stock,
	}, &resp)
	if status != http.StatusCreated {
		t.Fatalf("Create product %q: expected 201, got %d", title, status)
	}
	return resp.ProductID
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func jsonDecode(r io.Reader, out interface{}) error {
	return json.NewDecoder(r).Decode(out)
}

func (a *testAPI) registerUser(t *testing.T, username, password string) int64 {
	t.Helper()

	var resp struct {
		UserID int64 `json:"userId"`
	}
	status := a.do(t, http.MethodPost, "/register",
		map[string]string{"username": username, "password": password}, &resp)
	if status != http.StatusCreated {
		t.Fatalf("Register %q: expected 201, got %d", username, status)
	}
	return resp.UserID
}
