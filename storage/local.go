package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Signed-URL query parameter names used by the local store and the
// public download endpoint that verifies them.
const (
	SignedParamPath     = "path"
	SignedParamFilename = "filename"
	SignedParamExpires  = "expires"
	SignedParamSig      = "sig"
)

// ErrSignatureInvalid is returned when a signed-URL token does not verify
var ErrSignatureInvalid = errors.New("signature invalid")

// ErrLinkExpired is returned when a signed-URL token is past its expiry
var ErrLinkExpired = errors.New("link expired")

// LocalStore implements BlobStore for the local filesystem. Signed URLs
// are HMAC-SHA256 tokens over path|filename|expiry, verified by the
// public /files/signed endpoint — same expiry semantics as S3 presigning
// without AWS.
type LocalStore struct {
	basePath string
	secret   []byte
	baseURL  string
	now      func() time.Time
}

// NewLocalStore creates a new local blob store instance
func NewLocalStore(basePath, secret, baseURL string) (*LocalStore, error) {
	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
		secret:   []byte(secret),
		baseURL:  baseURL,
		now:      time.Now,
	}, nil
}

// Put stores a blob on the local filesystem
func (s *LocalStore) Put(ctx context.Context, path string, data io.Reader, size int64, contentType string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(path))

	// Create directory structure (the owner namespace prefix)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // Clean up on error
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get retrieves a blob from the local filesystem
func (s *LocalStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(path))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// SignedURL returns a URL to the public download endpoint carrying an
// HMAC token valid for ttl
func (s *LocalStore) SignedURL(ctx context.Context, path, filename string, ttl time.Duration) (string, error) {
	expires := s.now().Add(ttl).Unix()

	q := url.Values{}
	q.Set(SignedParamPath, path)
	q.Set(SignedParamFilename, filename)
	q.Set(SignedParamExpires, strconv.FormatInt(expires, 10))
	q.Set(SignedParamSig, s.sign(path, filename, expires))

	return s.baseURL + "/files/signed?" + q.Encode(), nil
}

// VerifySignedQuery checks the HMAC token and expiry carried in a signed
// URL's query parameters
func (s *LocalStore) VerifySignedQuery(path, filename, expiresStr, sig string) error {
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return ErrSignatureInvalid
	}

	want := s.sign(path, filename, expires)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrSignatureInvalid
	}
	if s.now().Unix() > expires {
		return ErrLinkExpired
	}
	return nil
}

func (s *LocalStore) sign(path, filename string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%s|%d", path, filename, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
