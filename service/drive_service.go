package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"luxemarket/models"
	"luxemarket/utils"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// ListVariantImages lists all image files in a Google Drive folder and parses their names
// as PRODUCTID_COLOR[_N] variant images. Files that don't match are skipped.
func (ds *DriveService) ListVariantImages(ctx context.Context, folderID string) ([]models.VariantImageAsset, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			OrderBy("name").
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	return parseDriveFiles(allFiles), nil
}

// parseDriveFiles keeps image files whose names follow the variant pattern
func parseDriveFiles(files []*drive.File) []models.VariantImageAsset {
	var assets []models.VariantImageAsset
	for _, file := range files {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}

		parsed, err := utils.ParseVariantFileName(file.Name)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", file.Name, err)
			continue
		}

		parsed.DriveFileID = file.Id
		parsed.ImageURL = fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id)
		assets = append(assets, *parsed)
	}
	return assets
}

// DownloadImage downloads a file's content from Google Drive
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
