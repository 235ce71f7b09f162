package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/SujallG/Secure-Media-Vault/storage"

	"github.com/gin-gonic/gin"
)

// SignedFileHandler serves local-store blobs through signed-token URLs.
// It is the local counterpart of an S3 presigned GET: no session is
// required, the token alone carries the capability.
type SignedFileHandler struct {
	store *storage.LocalStore
}

// NewSignedFileHandler creates a new signed file handler
func NewSignedFileHandler(store *storage.LocalStore) *SignedFileHandler {
	return &SignedFileHandler{store: store}
}

// Download handles GET /files/signed
func (h *SignedFileHandler) Download(c *gin.Context) {
	path := c.Query(storage.SignedParamPath)
	filename := c.Query(storage.SignedParamFilename)
	expires := c.Query(storage.SignedParamExpires)
	sig := c.Query(storage.SignedParamSig)

	if err := h.store.VerifySignedQuery(path, filename, expires, sig); err != nil {
		status := http.StatusForbidden
		code := "SIGNATURE_INVALID"
		if errors.Is(err, storage.ErrLinkExpired) {
			code = "LINK_EXPIRED"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	reader, err := h.store.Get(c.Request.Context(), path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": err.Error(),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	// Transfer errors past this point cannot be reported; the response
	// has already started.
	io.Copy(c.Writer, reader)
}
