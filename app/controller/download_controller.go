package controller

import (
	"log"
	"net/http"
	"strings"

	"luxemarket/service"
)

// DownloadController handles the Google Drive variant image endpoints.
// Both services are nil when Drive credentials are not configured.
type DownloadController struct {
	syncService     service.SyncServiceInterface
	downloadService service.DownloadServiceInterface
	defaultFolderID string
}

// NewDownloadController creates a new DownloadController
func NewDownloadController(syncService service.SyncServiceInterface, downloadService service.DownloadServiceInterface, defaultFolderID string) *DownloadController {
	return &DownloadController{
		syncService:     syncService,
		downloadService: downloadService,
		defaultFolderID: defaultFolderID,
	}
}

// folderID reads ?folderId=, falling back to VARIANT_FOLDER_ID
func (c *DownloadController) folderID(w http.ResponseWriter, r *http.Request) (string, bool) {
	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		folderID = c.defaultFolderID
	}
	if folderID == "" {
		http.Error(w, "folderId parameter is required (or set VARIANT_FOLDER_ID)", http.StatusBadRequest)
		return "", false
	}
	return folderID, true
}

// SyncImages handles POST /admin/variant-images/sync?folderId=
// Links Drive image URLs into product variantImages
func (c *DownloadController) SyncImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if c.syncService == nil {
		http.Error(w, "Google Drive is not configured", http.StatusServiceUnavailable)
		return
	}
	folderID, ok := c.folderID(w, r)
	if !ok {
		return
	}

	stats, err := c.syncService.SyncVariantImages(r.Context(), folderID)
	if err != nil {
		writeError(w, "sync variant images", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DownloadImages handles POST /admin/variant-images/download?folderId=
// Mirrors Drive images into the upload directory and links the local copies
func (c *DownloadController) DownloadImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if c.downloadService == nil {
		http.Error(w, "Google Drive is not configured", http.StatusServiceUnavailable)
		return
	}
	folderID, ok := c.folderID(w, r)
	if !ok {
		return
	}

	log.Printf("📥 Download request received for folder: %s", folderID)
	resp, err := c.downloadService.DownloadVariantImages(r.Context(), folderID)
	if err != nil {
		writeError(w, "download variant images", err)
		return
	}

	log.Printf("✅ Download request completed: %d/%d images downloaded", resp.Downloaded, resp.Total)
	writeJSON(w, http.StatusOK, resp)
}
