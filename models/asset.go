package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetStatus represents the lifecycle state of an asset
type AssetStatus string

const (
	// AssetStatusUploading is set when the record is created, before the blob transfer
	AssetStatusUploading AssetStatus = "uploading"
	// AssetStatusReady is set once the blob is confirmed stored
	AssetStatusReady AssetStatus = "ready"
)

// Asset represents an uploaded file's metadata record
type Asset struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Filename    string      `json:"filename"`
	Mime        string      `json:"mime"`
	Size        int64       `json:"size"`
	StoragePath string      `json:"storage_path"`
	Status      AssetStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
