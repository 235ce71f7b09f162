package repository

import (
	"context"

	"github.com/SujallG/Secure-Media-Vault/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssetRepository handles database operations for assets
type AssetRepository struct {
	db *pgxpool.Pool
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create inserts a new asset record. The caller populates the immutable
// fields and the initial status; id and created_at are server-assigned
// and written back into the asset.
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (
			owner_id, filename, mime, size, storage_path, status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		asset.OwnerID,
		asset.Filename,
		asset.Mime,
		asset.Size,
		asset.StoragePath,
		asset.Status,
	).Scan(&asset.ID, &asset.CreatedAt)

	return err
}

// UpdateStatus sets the status of an asset record
func (r *AssetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AssetStatus) error {
	query := `UPDATE assets SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	asset := &models.Asset{}
	query := `
		SELECT id, owner_id, filename, mime, size, storage_path, status, created_at
		FROM assets
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.OwnerID,
		&asset.Filename,
		&asset.Mime,
		&asset.Size,
		&asset.StoragePath,
		&asset.Status,
		&asset.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return asset, nil
}

// ListByOwnerID retrieves all assets owned by a user, newest first
func (r *AssetRepository) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Asset, error) {
	query := `
		SELECT id, owner_id, filename, mime, size, storage_path, status, created_at
		FROM assets
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		asset := &models.Asset{}
		err := rows.Scan(
			&asset.ID,
			&asset.OwnerID,
			&asset.Filename,
			&asset.Mime,
			&asset.Size,
			&asset.StoragePath,
			&asset.Status,
			&asset.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}
