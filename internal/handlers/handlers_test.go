package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campuskart-backend/internal/apperr"
	"campuskart-backend/internal/dto"
	"campuskart-backend/internal/handlers"
	"campuskart-backend/internal/models"
	"campuskart-backend/internal/password"
	"campuskart-backend/internal/routes"
	"campuskart-backend/internal/service"
	"campuskart-backend/internal/token"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.ErrUserNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperr.ErrUserNotFound
}

func (m *memUserStore) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperr.ErrEmailTaken
		}
	}
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

type memItemStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Item
}

func (m *memItemStore) Create(_ context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *memItemStore) FindByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, apperr.ErrItemNotFound
}

func (m *memItemStore) ListActive(_ context.Context, seller *uuid.UUID) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []models.Item{}
	for _, item := range m.items {
		if item.Status != models.ItemStatusActive {
			continue
		}
		if seller != nil && item.SellerID != *seller {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

func (m *memItemStore) CountActiveBySeller(_ context.Context, sellerID uuid.UUID) (int, error) {
	items, _ := m.ListActive(context.Background(), &sellerID)
	return len(items), nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T) *httptest.Server {
	return newTestServerUploadCap(t, 5*1024*1024)
}

func newTestServerUploadCap(t *testing.T, uploadCap int64) *httptest.Server {
	t.Helper()

	users := &memUserStore{users: map[uuid.UUID]*models.User{}}
	items := &memItemStore{items: map[uuid.UUID]*models.Item{}}
	tokens := token.NewIssuer("test-secret", 7*24*time.Hour)
	svc := service.NewAuthService(users, items, password.NewHasher(bcrypt.MinCost), tokens)

	uploadDir := t.TempDir()
	mux := routes.SetupRoutes(
		handlers.NewAuthHandler(svc),
		handlers.NewItemsHandler(items),
		handlers.NewUploadHandler(uploadDir, uploadCap),
		handlers.NewGoogleAuthHandler(svc, "client-id", "client-secret", "http://localhost/auth/google/callback"),
		handlers.NewHealthHandler(stubPinger{}),
		tokens,
		uploadDir,
	)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, srv *httptest.Server, name, email, pass string) dto.AuthResponse {
	t.Helper()
	resp := postJSON(t, srv.URL+"/auth/register", dto.RegisterRequest{
		Name: name, Email: email, Password: pass,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeJSON[dto.AuthResponse](t, resp)
}

func authGet(t *testing.T, url, tok string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterLoginMe(t *testing.T) {
	srv := newTestServer(t)

	// Register with a mixed-case email.
	auth := register(t, srv, "Alice", "A@x.com", "secret1")
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "a@x.com", auth.User.Email)
	assert.Equal(t, "Alice", auth.User.Name)

	// The token from registration resolves to the same user via /auth/me.
	resp := authGet(t, srv.URL+"/auth/me", auth.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeJSON[dto.UserResponse](t, resp)
	assert.Equal(t, auth.User.ID, me.ID)

	// Registering the same email again, in lowercase, conflicts.
	resp = postJSON(t, srv.URL+"/auth/register", dto.RegisterRequest{
		Name: "Mallory", Email: "a@x.com", Password: "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Login round-trip.
	resp = postJSON(t, srv.URL+"/auth/login", dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeJSON[dto.AuthResponse](t, resp)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegister_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", dto.RegisterRequest{
		Name: "Alice", Email: "a@x.com", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/register", dto.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLogin_Failures(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "Alice", "a@x.com", "secret1")

	// Wrong password and unknown email produce the same response shape.
	resp := postJSON(t, srv.URL+"/auth/login", dto.LoginRequest{Email: "a@x.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	wrongPass := decodeJSON[dto.ErrorResponse](t, resp)

	resp = postJSON(t, srv.URL+"/auth/login", dto.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	unknown := decodeJSON[dto.ErrorResponse](t, resp)

	assert.Equal(t, wrongPass, unknown)

	// Missing fields are a 400, not a 401.
	resp = postJSON(t, srv.URL+"/auth/login", dto.LoginRequest{Email: "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMe_Unauthorized(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/auth/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSellerProfile(t *testing.T) {
	srv := newTestServer(t)
	auth := register(t, srv, "Alice", "a@x.com", "secret1")

	// Two active listings for Alice.
	for _, title := range []string{"Calculus textbook", "Desk lamp"} {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/items",
			bytes.NewReader(mustJSON(t, dto.CreateItemRequest{Title: title, Price: 100})))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+auth.Token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/auth/profile/" + auth.User.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeJSON[dto.ProfileResponse](t, resp)
	assert.Equal(t, auth.User.ID, profile.User.ID)
	assert.Equal(t, 2, profile.ItemsCount)

	// Unknown seller is a 404, garbage id a 400.
	resp, err = http.Get(srv.URL + "/auth/profile/" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/auth/profile/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItems(t *testing.T) {
	srv := newTestServer(t)
	auth := register(t, srv, "Alice", "a@x.com", "secret1")

	// Creating a listing requires auth.
	resp := postJSON(t, srv.URL+"/items", dto.CreateItemRequest{Title: "Bike", Price: 1500})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/items",
		bytes.NewReader(mustJSON(t, dto.CreateItemRequest{Title: "Bike", Price: 1500})))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[dto.ItemResponse](t, resp)
	assert.Equal(t, auth.User.ID, created.SellerID)
	assert.Equal(t, models.ItemStatusActive, created.Status)

	// Listing and detail.
	resp, err = http.Get(srv.URL + "/items")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeJSON[dto.ItemsResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)

	resp, err = http.Get(srv.URL + "/items/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decodeJSON[dto.ItemResponse](t, resp)
	assert.Equal(t, created.ID, detail.ID)

	resp, err = http.Get(srv.URL + "/items/" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpload(t *testing.T) {
	srv := newTestServer(t)
	auth := register(t, srv, "Alice", "a@x.com", "secret1")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "bike.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	uploaded := decodeJSON[dto.UploadResponse](t, resp)
	require.True(t, strings.HasPrefix(uploaded.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(uploaded.URL, ".jpg"))

	// The stored file is served back.
	resp, err = http.Get(srv.URL + uploaded.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpload_TooLarge(t *testing.T) {
	srv := newTestServerUploadCap(t, 1024)
	auth := register(t, srv, "Alice", "a@x.com", "secret1")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "huge.jpg")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 64*1024))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decodeJSON[dto.ErrorResponse](t, resp)
	assert.NotEmpty(t, errResp.Error)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/livez", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestReadiness_DatabaseDown(t *testing.T) {
	h := handlers.NewHealthHandler(stubPinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "degraded", health.Status)
}

func TestGoogleLogin_ReturnsAuthURL(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/auth/google/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeJSON[dto.GoogleLoginResponse](t, resp)
	assert.Contains(t, login.AuthURL, "accounts.google.com")
	assert.NotEmpty(t, login.State)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
