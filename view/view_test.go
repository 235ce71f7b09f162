package view_test

import (
	"testing"
	"time"

	"github.com/SujallG/Secure-Media-Vault/models"
	"github.com/SujallG/Secure-Media-Vault/view"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func asset(filename string, size int64, status models.AssetStatus) *models.Asset {
	return &models.Asset{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Filename:  filename,
		Mime:      "application/octet-stream",
		Size:      size,
		Status:    status,
		CreatedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestProject_LoadingTakesPrecedence(t *testing.T) {
	assets := []*models.Asset{asset("a.txt", 10, models.AssetStatusReady)}

	v := view.Project(true, true, assets)

	require.Equal(t, view.StateLoading, v.State)
	require.True(t, v.UploadInProgress)
	require.Empty(t, v.Assets)
}

func TestProject_Empty(t *testing.T) {
	v := view.Project(false, false, nil)

	require.Equal(t, view.StateEmpty, v.State)
	require.False(t, v.UploadInProgress)
	require.Empty(t, v.Assets)
}

func TestProject_Populated(t *testing.T) {
	assets := []*models.Asset{
		asset("photo.png", 2048, models.AssetStatusReady),
		asset("big.mp4", 1536, models.AssetStatusUploading),
	}

	v := view.Project(false, false, assets)

	require.Equal(t, view.StatePopulated, v.State)
	require.Len(t, v.Assets, 2)

	require.Equal(t, "photo.png", v.Assets[0].Filename)
	require.Equal(t, "2.0 KB", v.Assets[0].SizeLabel)
	require.Equal(t, models.AssetStatusReady, v.Assets[0].Status)

	require.Equal(t, "1.5 KB", v.Assets[1].SizeLabel)
	require.Equal(t, models.AssetStatusUploading, v.Assets[1].Status)
}

func TestProject_DownloadableOnlyWhenReady(t *testing.T) {
	assets := []*models.Asset{
		asset("done.txt", 10, models.AssetStatusReady),
		asset("pending.txt", 10, models.AssetStatusUploading),
	}

	v := view.Project(false, false, assets)

	require.True(t, v.Assets[0].Downloadable)
	require.False(t, v.Assets[1].Downloadable)
}

func TestProject_UploadInProgressIsOrthogonal(t *testing.T) {
	// the overlay flag rides along with every primary state
	require.True(t, view.Project(false, true, nil).UploadInProgress)
	require.Equal(t, view.StateEmpty, view.Project(false, true, nil).State)

	assets := []*models.Asset{asset("a.txt", 10, models.AssetStatusReady)}
	v := view.Project(false, true, assets)
	require.True(t, v.UploadInProgress)
	require.Equal(t, view.StatePopulated, v.State)
}

func TestSizeLabel(t *testing.T) {
	require.Equal(t, "0.0 KB", view.SizeLabel(0))
	require.Equal(t, "0.5 KB", view.SizeLabel(512))
	require.Equal(t, "2.0 KB", view.SizeLabel(2048))
	require.Equal(t, "1024.0 KB", view.SizeLabel(1024*1024))
}

func TestDateLabel(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	require.Equal(t, "3/14/2025", view.DateLabel(created))
}
