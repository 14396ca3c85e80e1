package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	// UploadFile stores data in folderID and returns the new file id
	UploadFile(ctx context.Context, folderID, name, mimeType string, data []byte) (string, error)
}
