package model

import "time"

// FileAttachment is the metadata row of a document uploaded for a report.
// The content itself lives in object storage under StoragePath.
type FileAttachment struct {
	ID          string    `json:"id"`
	ReportID    string    `json:"report_id"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`

	// URL is a presigned download link, filled in by the service layer only.
	URL string `json:"file_url,omitempty"`
}
