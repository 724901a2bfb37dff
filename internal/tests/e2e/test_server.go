package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/pomodorosvc/internal/app"
	"github.com/you/pomodorosvc/internal/infrastructure/database"
	testconfig "github.com/you/pomodorosvc/internal/tests/config"
)

// TestServer runs the fully wired API over SQLite and miniredis
type TestServer struct {
	Server    *httptest.Server
	Container *app.Container
	DB        *gorm.DB
	Redis     *miniredis.Miniredis
	Client    *http.Client
}

// Response is a decoded API response
type Response struct {
	Status int
	Body   map[string]interface{}
}

// Data returns the "data" object of the response
func (r *Response) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// Error returns the "error" message of the response
func (r *Response) Error() string {
	msg, _ := r.Body["error"].(string)
	return msg
}

// NewTestServer creates and starts a server private to the test
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := testconfig.NewTestConfig(t)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormCfg := database.Config(logger.Silent)
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", name)), gormCfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// shared-cache SQLite locks tables across connections
	sqlDB.SetMaxOpenConns(1)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	container, err := app.NewContainerWithConnections(cfg, zerolog.Nop(), db, rdb)
	if err != nil {
		t.Fatalf("failed to build container: %v", err)
	}
	if err := container.PolicySvc.SeedDefaults(); err != nil {
		t.Fatalf("failed to seed policies: %v", err)
	}

	ts := &TestServer{
		Server:    httptest.NewServer(container.Router),
		Container: container,
		DB:        db,
		Redis:     mr,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}

	t.Cleanup(func() {
		ts.Server.Close()
		if err := container.Close(); err != nil {
			t.Logf("failed to close container: %v", err)
		}
	})
	return ts
}

// URL returns the full URL for a given path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Do sends a JSON request, authenticated when token is not empty
func (ts *TestServer) Do(t *testing.T, method, path string, body interface{}, token string) *Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL(path), reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := &Response{Status: resp.StatusCode, Body: map[string]interface{}{}}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.Body); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return out
}
