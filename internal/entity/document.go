package entity

import "github.com/joseph-ayodele/tourpack/internal/common"

// Document is the text of one itinerary, pages concatenated in order with no page markers.
type Document struct {
	ID   string `json:"id"`   // usually the file name
	Path string `json:"path"` // source path, empty for in-memory documents
	Text string `json:"text"`
}

// Failure records why one document of a batch produced no record.
type Failure struct {
	DocumentID string           `json:"document_id"`
	Path       string           `json:"path"`
	Kind       common.ErrorKind `json:"kind"`
	Reason     string           `json:"reason"`
}
