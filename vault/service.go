package vault

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/SujallG/Secure-Media-Vault/models"
	"github.com/SujallG/Secure-Media-Vault/storage"

	"github.com/google/uuid"
)

// LinkTTL is the validity window of issued download links, enforced by
// the blob store backend, not by this client.
const LinkTTL = 90 * time.Second

// AssetRecords is the record-store capability the lifecycle manager
// consumes. Satisfied by repository.AssetRepository.
type AssetRecords interface {
	Create(ctx context.Context, asset *models.Asset) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.AssetStatus) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Asset, error)
}

// UploadInput describes a file selected for upload.
type UploadInput struct {
	Filename string
	Mime     string
	Size     int64
	Data     io.Reader
}

// Service is the asset lifecycle manager: it orchestrates the
// register → store blob → finalize upload protocol and the read side
// (listing, signed download links).
//
// Assets are never deleted and never mutated beyond the single
// uploading → ready transition. A transfer or finalize failure leaves a
// record stuck at uploading with no automatic retry or rollback; there
// is no failed status and repairing such records is an out-of-band
// concern.
type Service struct {
	records AssetRecords
	blobs   storage.BlobStore
	logger  Logger
	pathIDs PathIDSource

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
}

// NewService creates a new lifecycle manager with the provided dependencies.
func NewService(records AssetRecords, blobs storage.BlobStore, logger Logger, pathIDs PathIDSource) *Service {
	return &Service{
		records:  records,
		blobs:    blobs,
		logger:   logger,
		pathIDs:  pathIDs,
		inFlight: make(map[uuid.UUID]bool),
	}
}

// ListAssets fetches all assets owned by ownerID, newest first. An empty
// list is a valid result, distinct from an error. The error is returned
// rather than swallowed; the HTTP layer decides to degrade to an empty
// list so read failures never block the UI.
func (s *Service) ListAssets(ctx context.Context, ownerID uuid.UUID) ([]*models.Asset, error) {
	assets, err := s.records.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return assets, nil
}

// GetAsset retrieves a single asset record by ID.
func (s *Service) GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	return s.records.GetByID(ctx, id)
}

// Upload runs the three-phase upload protocol for ownerID, strictly in
// order with no parallelism:
//
//  1. insert the asset record with status uploading (failure aborts
//     everything, no blob transfer is attempted)
//  2. transfer the bytes to the blob store at the computed storage path
//     (failure leaves the record at uploading permanently)
//  3. flip the record's status to ready (failure leaves a stored blob
//     under an uploading record)
//
// At most one upload per owner may be in flight; a second concurrent
// call returns ErrUploadInFlight.
func (s *Service) Upload(ctx context.Context, ownerID uuid.UUID, in UploadInput) (*models.Asset, error) {
	if !s.beginUpload(ownerID) {
		return nil, ErrUploadInFlight
	}
	defer s.endUpload(ownerID)

	storagePath := s.storagePath(ownerID, in.Filename)

	asset := &models.Asset{
		OwnerID:     ownerID,
		Filename:    in.Filename,
		Mime:        in.Mime,
		Size:        in.Size,
		StoragePath: storagePath,
		Status:      models.AssetStatusUploading,
	}

	if err := s.records.Create(ctx, asset); err != nil {
		return nil, &UploadError{Stage: StageRegister, Err: err}
	}

	if err := s.blobs.Put(ctx, storagePath, in.Data, in.Size, in.Mime); err != nil {
		s.logger.Error("blob transfer failed, record left at uploading",
			"asset_id", asset.ID, "storage_path", storagePath)
		return nil, &UploadError{Stage: StageTransfer, Err: err}
	}

	if err := s.records.UpdateStatus(ctx, asset.ID, models.AssetStatusReady); err != nil {
		s.logger.Error("finalize failed, blob stored but record left at uploading",
			"asset_id", asset.ID, "storage_path", storagePath)
		return nil, &UploadError{Stage: StageFinalize, Err: err}
	}
	asset.Status = models.AssetStatusReady

	s.logger.Info("asset uploaded", "asset_id", asset.ID, "filename", asset.Filename, "size", asset.Size)
	return asset, nil
}

// UploadBusy reports whether ownerID currently has an upload in flight.
func (s *Service) UploadBusy(ownerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[ownerID]
}

// IssueDownloadLink requests a signed URL for a ready asset, valid for
// LinkTTL from issuance. Links are not tracked for single use; the
// backend rejects them after expiry.
func (s *Service) IssueDownloadLink(ctx context.Context, asset *models.Asset) (string, error) {
	if asset.Status != models.AssetStatusReady {
		return "", ErrAssetNotReady
	}

	url, err := s.blobs.SignedURL(ctx, asset.StoragePath, asset.Filename, LinkTTL)
	if err != nil {
		return "", &LinkError{Err: err}
	}
	return url, nil
}

// Download issues a signed link for the asset and hands it to the sink.
// The sink only dispatches the download; transfer completion is not
// observable here.
func (s *Service) Download(ctx context.Context, asset *models.Asset, sink DownloadSink) error {
	url, err := s.IssueDownloadLink(ctx, asset)
	if err != nil {
		return err
	}
	return sink.StartDownload(url, asset.Filename)
}

func (s *Service) beginUpload(ownerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[ownerID] {
		return false
	}
	s.inFlight[ownerID] = true
	return true
}

func (s *Service) endUpload(ownerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, ownerID)
}

// storagePath computes {ownerID}/{randomUUID}.{ext}. Paths are never
// checked for pre-existence; uniqueness rests on the randomness of the
// ID source.
func (s *Service) storagePath(ownerID uuid.UUID, filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	name := s.pathIDs.New()
	if ext != "" {
		name = name + "." + ext
	}
	return fmt.Sprintf("%s/%s", ownerID, name)
}
