package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SujallG/Secure-Media-Vault/models"
	"github.com/SujallG/Secure-Media-Vault/vault"
	"github.com/SujallG/Secure-Media-Vault/view"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssetHandler handles HTTP requests for the asset lifecycle
type AssetHandler struct {
	vault       *vault.Service
	maxFileSize int64
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(svc *vault.Service) *AssetHandler {
	return &AssetHandler{
		vault:       svc,
		maxFileSize: 50 * 1024 * 1024, // 50MB
	}
}

// ListAssets handles GET /api/assets. Read failures are logged and
// degrade to an empty listing; they never block the page.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	user := CurrentUser(c)

	assets, err := h.vault.ListAssets(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("Error loading assets for %s: %v", user.ID, err)
		assets = nil
	}
	if assets == nil {
		assets = []*models.Asset{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"assets": assets,
			"view":   view.Project(false, h.vault.UploadBusy(user.ID), assets),
		},
	})
}

// UploadAsset handles POST /api/assets (multipart form, field "file")
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	user := CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeFromExtension(fileHeader.Filename)
	}

	asset, err := h.vault.Upload(c.Request.Context(), user.ID, vault.UploadInput{
		Filename: fileHeader.Filename,
		Mime:     mimeType,
		Size:     fileHeader.Size,
		Data:     file,
	})
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	// Refresh the listing so the caller observes the new ready asset.
	assets, err := h.vault.ListAssets(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("Error refreshing assets for %s: %v", user.ID, err)
		assets = []*models.Asset{}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"asset":  asset,
			"assets": assets,
			"view":   view.Project(false, false, assets),
		},
	})
}

// DownloadAsset handles GET /api/assets/:id/download. It issues a
// 90-second signed link and fires it through the redirect sink; the
// browser's download manager takes over from there.
func (h *AssetHandler) DownloadAsset(c *gin.Context) {
	user := CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid asset ID format",
			},
		})
		return
	}

	asset, err := h.vault.GetAsset(c.Request.Context(), id)
	if err != nil || asset.OwnerID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Asset not found",
			},
		})
		return
	}

	if err := h.vault.Download(c.Request.Context(), asset, redirectSink{c: c}); err != nil {
		h.respondDownloadError(c, err)
		return
	}
}

func (h *AssetHandler) respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, vault.ErrUploadInFlight) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_IN_FLIGHT",
				"message": err.Error(),
			},
		})
		return
	}

	code := "UPLOAD_FAILED"
	var uploadErr *vault.UploadError
	if errors.As(err, &uploadErr) {
		switch uploadErr.Stage {
		case vault.StageRegister:
			code = "REGISTER_FAILED"
		case vault.StageTransfer:
			code = "TRANSFER_FAILED"
		case vault.StageFinalize:
			code = "FINALIZE_FAILED"
		}
	}

	// Raw failure message goes to the user; no retry is performed.
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

func (h *AssetHandler) respondDownloadError(c *gin.Context, err error) {
	if errors.Is(err, vault.ErrAssetNotReady) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ASSET_NOT_READY",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "LINK_ISSUANCE_FAILED",
			"message": err.Error(),
		},
	})
}

// redirectSink implements vault.DownloadSink by answering the request
// with a redirect to the signed URL. No navigation state is kept; the
// response is the whole side effect.
type redirectSink struct {
	c *gin.Context
}

func (s redirectSink) StartDownload(url, suggestedFilename string) error {
	s.c.Redirect(http.StatusSeeOther, url)
	return nil
}

func mimeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
