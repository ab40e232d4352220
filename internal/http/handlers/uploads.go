package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/clickfit/clickfit/internal/storage"
	"github.com/gin-gonic/gin"
)

// UploadsHandler accepts multipart image uploads and lists what has been
// stored. Limits mirror the service contract: maxFiles per request,
// maxBytes per file, image/* only.
type UploadsHandler struct {
	store    *storage.ImageStore
	maxFiles int
	maxBytes int64
}

func NewUploadsHandler(store *storage.ImageStore, maxFiles int, maxBytes int64) *UploadsHandler {
	return &UploadsHandler{
		store:    store,
		maxFiles: maxFiles,
		maxBytes: maxBytes,
	}
}

func (h *UploadsHandler) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()

	if err != nil {
		RespondBadRequest(ctx, "No files uploaded")
		return
	}

	files := form.File["images"]

	if len(files) == 0 {
		RespondBadRequest(ctx, "No files uploaded")
		return
	}

	if len(files) > h.maxFiles {
		RespondBadRequest(ctx, fmt.Sprintf("Too many files. Maximum is %d files.", h.maxFiles))
		return
	}

	// Validate the whole batch before writing anything to disk.
	for _, fh := range files {
		if fh.Size > h.maxBytes {
			RespondBadRequest(ctx, fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxBytes/(1024*1024)))
			return
		}

		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			RespondBadRequest(ctx, "Only image files are allowed!")
			return
		}
	}

	uploaded := make([]storage.ImageFile, 0, len(files))

	for _, fh := range files {
		f, err := fh.Open()

		if err != nil {
			RespondInternal(ctx, "Upload failed")
			return
		}

		saved, err := h.store.Save(fh.Filename, fh.Header.Get("Content-Type"), f)
		f.Close()

		if err != nil {
			RespondInternal(ctx, "Upload failed")
			return
		}

		uploaded = append(uploaded, saved)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully uploaded %d file(s)", len(uploaded)),
		"files":   uploaded,
	})
}

func (h *UploadsHandler) ListImages(ctx *gin.Context) {
	images, err := h.store.List()

	if err != nil {
		RespondInternal(ctx, "Failed to list images")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  images,
	})
}
