package models

// UploadRequest asks the server to issue a storage path (and, when a blob
// store is configured, a signed upload URL) for a client-side upload.
type UploadRequest struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// UploadResponse carries the issued storage path. SignedUploadURL and
// PublicURL are nil in local development mode where no blob store is
// configured.
type UploadResponse struct {
	StoragePath     string  `json:"storagePath"`
	SignedUploadURL *string `json:"signedUploadUrl"`
	PublicURL       *string `json:"publicUrl"`
}
