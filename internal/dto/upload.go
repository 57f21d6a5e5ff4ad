package dto

// UploadResponse returns the public URL of an uploaded photo
type UploadResponse struct {
	URL string `json:"url"`
}
