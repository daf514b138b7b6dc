package domain

import "time"

type DocumentCategory string

const (
	DocumentResume      DocumentCategory = "resume"
	DocumentCoverLetter DocumentCategory = "cover_letter"
	DocumentReference   DocumentCategory = "reference"
	DocumentOther       DocumentCategory = "other"
)

func (c DocumentCategory) Valid() bool {
	switch c {
	case DocumentResume, DocumentCoverLetter, DocumentReference, DocumentOther:
		return true
	default:
		return false
	}
}

type Document struct {
	ID            string           `json:"id"`
	ApplicationID string           `json:"application_id"`
	Name          string           `json:"name"`
	Category      DocumentCategory `json:"category"`
	FileType      string           `json:"file_type"`
	FileSize      int64            `json:"file_size"`
	Tags          []string         `json:"tags,omitempty"`
	Version       int              `json:"version,omitempty"`
	DataURI       string           `json:"data_uri,omitempty"`
	ExtractedText string           `json:"-"`
	UploadedAt    time.Time        `json:"uploaded_at"`
}
