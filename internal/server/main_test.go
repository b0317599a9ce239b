package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/passwords"

	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		Env:               "test",
		DBDriver:          "sqlite",
		SessionSecret:     encryptcookie.GenerateKey(),
		SessionTTLMinutes: 60,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "server.db")))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestServer(t *testing.T, redisClient *redis.Client) (*Server, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	srv, err := NewServerWithDeps(testConfig(), db, redisClient, WithHasher(passwords.NewBcryptHasher(bcrypt.MinCost)))
	require.NoError(t, err)
	return srv, db
}

// client drives the app like a browser: it keeps cookies between requests
// and does not follow redirects.
type client struct {
	t       *testing.T
	srv     *Server
	cookies map[string]*http.Cookie
}

type response struct {
	status   int
	location string
	body     string
	header   http.Header
}

func newClient(t *testing.T, srv *Server) *client {
	return &client{t: t, srv: srv, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) response {
	c.t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	resp, err := c.srv.App().Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		c.cookies[cookie.Name] = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	return response{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		body:     string(body),
		header:   resp.Header,
	}
}

func (c *client) get(path string) response {
	c.t.Helper()
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) response {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) signup(username, password, email string) response {
	c.t.Helper()
	return c.post("/signup/", url.Values{
		"username":         {username},
		"password":         {password},
		"password_confirm": {password},
		"email":            {email},
	})
}
