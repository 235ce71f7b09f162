package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SujallG/Secure-Media-Vault/handlers"
	"github.com/SujallG/Secure-Media-Vault/models"
	"github.com/SujallG/Secure-Media-Vault/vault"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRecords struct {
	mu      sync.Mutex
	assets  map[uuid.UUID]*models.Asset
	seq     int
	listErr error
}

func newMemRecords() *memRecords {
	return &memRecords{assets: make(map[uuid.UUID]*models.Asset)}
}

func (r *memRecords) Create(ctx context.Context, asset *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	asset.ID = uuid.New()
	asset.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Second)
	stored := *asset
	r.assets[asset.ID] = &stored
	return nil
}

func (r *memRecords) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AssetStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return fmt.Errorf("no asset with id %s", id)
	}
	asset.Status = status
	return nil
}

func (r *memRecords) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, fmt.Errorf("no asset with id %s", id)
	}
	copied := *asset
	return &copied, nil
}

func (r *memRecords) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []*models.Asset
	for _, asset := range r.assets {
		if asset.OwnerID == ownerID {
			copied := *asset
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memRecords) seed(owner uuid.UUID, filename string, status models.AssetStatus) *models.Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	asset := &models.Asset{
		ID:          uuid.New(),
		OwnerID:     owner,
		Filename:    filename,
		Mime:        "application/octet-stream",
		Size:        1,
		StoragePath: owner.String() + "/" + uuid.NewString(),
		Status:      status,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Second),
	}
	r.assets[asset.ID] = asset
	return asset
}

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: make(map[string][]byte)}
}

func (b *memBlobs) Put(ctx context.Context, path string, data io.Reader, size int64, contentType string) error {
	if b.putErr != nil {
		return b.putErr
	}
	payload, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[path] = payload
	return nil
}

func (b *memBlobs) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	payload, ok := b.objects[path]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

func (b *memBlobs) SignedURL(ctx context.Context, path, filename string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://blobs.example/%s?filename=%s&expires=%d", path, filename, int64(ttl.Seconds())), nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]*models.User)}
}

func (u *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("no user with email %s", email)
}

func (u *memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[id]
	if !ok {
		return nil, fmt.Errorf("no user with id %s", id)
	}
	copied := *user
	return &copied, nil
}

func (u *memUsers) add(email, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[user.ID] = user
	return user
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*models.Session)}
}

func (s *memSessions) Create(ctx context.Context, token string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &models.Session{Token: token, UserID: userID, CreatedAt: time.Now()}
	return nil
}

func (s *memSessions) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, fmt.Errorf("no session for token")
	}
	copied := *session
	return &copied, nil
}

func (s *memSessions) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// env wires the full HTTP surface against in-memory fakes, with one
// seeded user and a live session token.
type env struct {
	router   *gin.Engine
	records  *memRecords
	blobs    *memBlobs
	users    *memUsers
	sessions *memSessions
	user     *models.User
	token    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	records := newMemRecords()
	blobs := newMemBlobs()
	users := newMemUsers()
	sessions := newMemSessions()

	user := users.add("test@example.com", "testpassword123")
	token := "test-session-token"
	require.NoError(t, sessions.Create(context.Background(), token, user.ID))

	svc := vault.NewService(records, blobs, vault.NewNopLogger(), vault.UUIDSource{})
	authHandler := handlers.NewAuthHandler(users, sessions)
	assetHandler := handlers.NewAssetHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	authed := api.Group("", handlers.RequireSession(users, sessions))
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/assets", assetHandler.ListAssets)
	authed.POST("/assets", assetHandler.UploadAsset)
	authed.GET("/assets/:id/download", assetHandler.DownloadAsset)

	return &env{
		router:   router,
		records:  records,
		blobs:    blobs,
		users:    users,
		sessions: sessions,
		user:     user,
		token:    token,
	}
}

func (e *env) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+e.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// multipartFile builds a multipart body with a single "file" part
// carrying an explicit content type.
func multipartFile(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}
