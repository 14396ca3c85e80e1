package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

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

// DownloadFile downloads the content of a Drive file
func (ds *DriveService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive returned status %d for file %s", resp.StatusCode, fileID)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	log.Printf("✓ Drive file downloaded: id=%s size=%d bytes", fileID, len(data))
	return data, nil
}

// UploadFile creates a file in a Drive folder
func (ds *DriveService) UploadFile(ctx context.Context, folderID, name, mimeType string, data []byte) (string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: mimeType,
	}
	if folderID != "" {
		file.Parents = []string{folderID}
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	log.Printf("✓ Drive file uploaded: name=%s id=%s", name, created.Id)
	return created.Id, nil
}
