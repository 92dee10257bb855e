package dto

// ImageUploadResponse returns the public URL of a stored pet photo.
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
	Message  string `json:"message"`
}
