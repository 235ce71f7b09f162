package vault

import "github.com/google/uuid"

// Logger provides structured logging for the service layer.
// The args follow slog conventions: alternating key/value pairs,
// so *slog.Logger satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger is a Logger that discards all output. Use in tests.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}

// PathIDSource abstracts the random component of storage paths so tests
// are deterministic. The production source must be cryptographically
// strong: paths are never checked for pre-existence, collision
// resistance is all that keeps owners' blobs apart.
type PathIDSource interface {
	New() string
}

// UUIDSource produces random UUIDs from crypto/rand.
type UUIDSource struct{}

func (UUIDSource) New() string { return uuid.NewString() }

// DownloadSink is the platform capability that turns a signed URL into a
// browser-initiated download. The HTTP implementation answers with a
// redirect; the transfer itself is handled by the browser's download
// manager and is outside the core's observability.
type DownloadSink interface {
	StartDownload(url, suggestedFilename string) error
}
