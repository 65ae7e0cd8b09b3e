package model

const (
	UploadKindImage = "image"
	UploadKindAudio = "audio"
)

// UploadSignature is handed to mobile clients so they can upload media
// directly to the media host without proxying bytes through the API.
type UploadSignature struct {
	UploadURL string `json:"upload_url"`
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder"`
	PublicID  string `json:"public_id"`
}
