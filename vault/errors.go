package vault

import (
	"errors"
	"fmt"
)

// UploadStage identifies which step of the upload protocol failed.
type UploadStage string

const (
	// StageRegister: the record insert failed; no blob transfer was attempted.
	StageRegister UploadStage = "register"
	// StageTransfer: the blob write failed; the record is left at status
	// uploading permanently.
	StageTransfer UploadStage = "transfer"
	// StageFinalize: the status update failed; the blob exists under a
	// record still marked uploading.
	StageFinalize UploadStage = "finalize"
)

// UploadError reports an aborted upload and the stage it failed at.
// Later stages are never attempted after a failure.
type UploadError struct {
	Stage UploadStage
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Stage, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// LinkError reports a failed signed-link issuance. The asset record is
// never affected.
type LinkError struct {
	Err error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("issue download link: %v", e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// ErrUploadInFlight is returned when an owner already has an upload in
// progress. There is no queuing; the caller retries after the first
// upload settles.
var ErrUploadInFlight = errors.New("an upload is already in progress")

// ErrAssetNotReady is returned when a download link is requested for an
// asset that has not reached status ready.
var ErrAssetNotReady = errors.New("asset is not ready for download")
