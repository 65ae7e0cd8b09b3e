package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/mementoapp/memento/internal/app"
	"github.com/mementoapp/memento/internal/config"
	"github.com/mementoapp/memento/internal/db/dbtest"
	"github.com/mementoapp/memento/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		AppName:             "Memento API",
		AppEnv:              "development",
		DBDriver:            "sqlite",
		DBConnection:        dbtest.Connection(t),
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		CORSAllowedOrigins:  []string{"*"},
		AuthRateLimit:       1000,
		AuthRateWindow:      time.Minute,
		MetricsEnabled:      true,
		UploadProvider:      config.UploadProviderCloudinary,
		UploadRootFolder:    "memento",
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

// expect performs the request, checks the status and decodes the body into out.
func (c *client) expect(method, path string, body any, want int, out any) {
	c.t.Helper()

	status, raw := c.do(method, path, body)
	if status != want {
		c.t.Fatalf("%s %s: status = %d, want %d (body %s)", method, path, status, want, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.t.Fatalf("%s %s: decode %s: %v", method, path, raw, err)
		}
	}
}

func detail(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode error body %s: %v", raw, err)
	}
	return body.Detail
}

func signUp(t *testing.T, base, email, name string) (*client, *model.User) {
	t.Helper()

	c := &client{t: t, base: base}
	var user model.User
	c.expect("POST", "/auth/register", map[string]string{
		"email": email, "password": "correct horse", "name": name,
	}, http.StatusCreated, &user)

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	c.expect("POST", "/auth/login", map[string]string{
		"email": email, "password": "correct horse",
	}, http.StatusOK, &tok)
	if tok.TokenType != "bearer" || tok.AccessToken == "" {
		t.Fatalf("unexpected token response: %+v", tok)
	}

	c.token = tok.AccessToken
	return c, &user
}

func TestAlbumSharingScenario(t *testing.T) {
	srv := newTestServer(t)

	alice, aliceUser := signUp(t, srv.URL, "alice@example.com", "Alice")
	bob, bobUser := signUp(t, srv.URL, "bob@example.com", "Bob")

	var me model.User
	alice.expect("GET", "/auth/me", nil, http.StatusOK, &me)
	if me.ID != aliceUser.ID || me.Email != "alice@example.com" {
		t.Fatalf("me = %+v", me)
	}

	// Alice creates an album; Bob can't see it yet
	var album model.Album
	alice.expect("POST", "/albums", map[string]string{"name": "Trip"}, http.StatusCreated, &album)
	if album.OwnerID != aliceUser.ID {
		t.Fatalf("owner = %q, want %q", album.OwnerID, aliceUser.ID)
	}

	status, raw := bob.do("GET", "/albums/"+album.ID, nil)
	if status != http.StatusForbidden {
		t.Fatalf("bob get album: status = %d, body %s", status, raw)
	}

	var bobAlbums []model.Album
	bob.expect("GET", "/albums", nil, http.StatusOK, &bobAlbums)
	if len(bobAlbums) != 0 {
		t.Fatalf("bob albums = %d, want 0", len(bobAlbums))
	}

	// Share with Bob
	var member model.AlbumMember
	alice.expect("POST", "/albums/"+album.ID+"/members", map[string]string{"user_id": bobUser.ID}, http.StatusCreated, &member)
	if member.UserID != bobUser.ID || member.AlbumID != album.ID {
		t.Fatalf("member = %+v", member)
	}

	status, raw = alice.do("POST", "/albums/"+album.ID+"/members", map[string]string{"user_id": bobUser.ID})
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate member: status = %d, body %s", status, raw)
	}

	bob.expect("GET", "/albums", nil, http.StatusOK, &bobAlbums)
	if len(bobAlbums) != 1 || bobAlbums[0].ID != album.ID {
		t.Fatalf("bob albums = %+v", bobAlbums)
	}

	// Members can add images but not rename the album
	status, _ = bob.do("PUT", "/albums/"+album.ID, map[string]string{"name": "Mine now"})
	if status != http.StatusForbidden {
		t.Fatalf("member rename: status = %d, want 403", status)
	}

	var image model.Image
	bob.expect("POST", "/images", map[string]any{
		"album_id":  album.ID,
		"image_url": "https://res.cloudinary.com/demo/image/upload/beach.jpg",
		"caption":   "Beach",
		"latitude":  41.38,
		"longitude": 2.17,
	}, http.StatusCreated, &image)
	if image.UserID != bobUser.ID {
		t.Fatalf("image creator = %q, want bob", image.UserID)
	}

	var images []model.Image
	alice.expect("GET", "/images/album/"+album.ID, nil, http.StatusOK, &images)
	if len(images) != 1 || images[0].ID != image.ID {
		t.Fatalf("album images = %+v", images)
	}

	// Audio, one per image
	var audio model.Audio
	bob.expect("POST", "/audio", map[string]string{
		"image_id": image.ID,
		"url":      "https://res.cloudinary.com/demo/raw/upload/waves.m4a",
	}, http.StatusCreated, &audio)

	status, raw = bob.do("POST", "/audio", map[string]string{
		"image_id": image.ID,
		"url":      "https://res.cloudinary.com/demo/raw/upload/other.m4a",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("second audio: status = %d, body %s", status, raw)
	}
	if !strings.Contains(detail(t, raw), "update endpoint") {
		t.Errorf("second audio detail = %q", detail(t, raw))
	}

	var byImage model.Audio
	alice.expect("GET", "/audio/image/"+image.ID, nil, http.StatusOK, &byImage)
	if byImage.ID != audio.ID {
		t.Fatalf("audio by image = %q, want %q", byImage.ID, audio.ID)
	}

	// Owner deletes the album and everything under it goes too
	alice.expect("DELETE", "/albums/"+album.ID, nil, http.StatusNoContent, nil)

	status, _ = alice.do("GET", "/images/"+image.ID, nil)
	if status != http.StatusNotFound {
		t.Errorf("image after album delete: status = %d, want 404", status)
	}
	status, _ = bob.do("GET", "/audio/"+audio.ID, nil)
	if status != http.StatusNotFound {
		t.Errorf("audio after album delete: status = %d, want 404", status)
	}
}

func TestUploadSignatures(t *testing.T) {
	srv := newTestServer(t)
	alice, aliceUser := signUp(t, srv.URL, "alice@example.com", "Alice")

	var first, second model.UploadSignature
	alice.expect("GET", "/upload/signature/image", nil, http.StatusOK, &first)
	alice.expect("GET", "/upload/signature/image", nil, http.StatusOK, &second)

	if first.Signature == second.Signature {
		t.Error("expected distinct signatures for consecutive requests")
	}
	if first.Folder != "memento/user_"+aliceUser.ID+"/images" {
		t.Errorf("folder = %q", first.Folder)
	}
	if first.CloudName != "demo" || first.APIKey != "key" {
		t.Errorf("unexpected credentials: %+v", first)
	}

	var audio model.UploadSignature
	alice.expect("GET", "/upload/signature/audio", nil, http.StatusOK, &audio)
	if !strings.HasSuffix(audio.Folder, "/audio") || !strings.Contains(audio.UploadURL, "/raw/upload") {
		t.Errorf("audio signature = %+v", audio)
	}
}

func TestAuthErrors(t *testing.T) {
	srv := newTestServer(t)
	anon := &client{t: t, base: srv.URL}

	status, raw := anon.do("GET", "/albums", nil)
	if status != http.StatusUnauthorized || detail(t, raw) != "Not authenticated" {
		t.Errorf("no token: status = %d, detail %q", status, raw)
	}

	forged := &client{t: t, base: srv.URL, token: "not-a-jwt"}
	status, raw = forged.do("GET", "/auth/me", nil)
	if status != http.StatusUnauthorized || detail(t, raw) != "Could not validate credentials" {
		t.Errorf("bad token: status = %d, detail %q", status, raw)
	}

	signUp(t, srv.URL, "alice@example.com", "Alice")

	status, raw = anon.do("POST", "/auth/register", map[string]string{
		"email": "ALICE@example.com", "password": "whatever", "name": "Other",
	})
	if status != http.StatusBadRequest || detail(t, raw) != "Email already registered" {
		t.Errorf("duplicate email: status = %d, body %s", status, raw)
	}

	status, raw = anon.do("POST", "/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	if status != http.StatusUnauthorized || detail(t, raw) != "Incorrect email or password" {
		t.Errorf("wrong password: status = %d, body %s", status, raw)
	}

	status, _ = anon.do("POST", "/auth/register", map[string]string{"email": "not-an-email"})
	if status != http.StatusUnprocessableEntity {
		t.Errorf("invalid body: status = %d, want 422", status)
	}
}

func TestPublicEndpoints(t *testing.T) {
	srv := newTestServer(t)
	anon := &client{t: t, base: srv.URL}

	var root map[string]string
	anon.expect("GET", "/", nil, http.StatusOK, &root)
	if root["message"] != "Welcome to Memento API" {
		t.Errorf("root = %v", root)
	}

	var health model.Health
	anon.expect("GET", "/health", nil, http.StatusOK, &health)
	if health.Status != "healthy" || health.Database != "connected" {
		t.Errorf("health = %+v", health)
	}

	status, raw := anon.do("GET", "/nowhere", nil)
	if status != http.StatusNotFound || detail(t, raw) != "Not Found" {
		t.Errorf("unknown path: status = %d, body %s", status, raw)
	}

	status, raw = anon.do("GET", "/metrics", nil)
	if status != http.StatusOK || !strings.Contains(string(raw), "memento_api_requests_total") {
		t.Errorf("metrics: status = %d", status)
	}
}

func TestWrongMethodOnKnownPath(t *testing.T) {
	srv := newTestServer(t)
	alice, _ := signUp(t, srv.URL, "alice@example.com", "Alice")

	var album model.Album
	alice.expect("POST", "/albums", map[string]string{"name": "Trip"}, http.StatusCreated, &album)

	req, _ := http.NewRequest("PATCH", srv.URL+"/albums/"+album.ID, nil)
	req.Header.Set("Authorization", "Bearer "+alice.token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed || detail(t, raw) != "Method Not Allowed" {
		t.Errorf("PATCH album: status = %d, body %s", resp.StatusCode, raw)
	}
	if got := resp.Header.Get("Allow"); got != "GET, PUT, DELETE" {
		t.Errorf("Allow = %q, want GET, PUT, DELETE", got)
	}

	status, raw := alice.do("POST", "/nowhere", nil)
	if status != http.StatusNotFound || detail(t, raw) != "Not Found" {
		t.Errorf("unknown path: status = %d, body %s", status, raw)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest("GET", srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "trace-123" {
		t.Errorf("X-Request-ID = %q, want trace-123", got)
	}
}
