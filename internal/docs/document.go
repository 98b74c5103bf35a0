package docs

import (
	"crypto/sha256"
	"encoding/hex"
)

// Document is one loaded documentation file. Immutable after load; the
// hash supports idempotence checks across runs.
type Document struct {
	// Path is relative to the scanned root, slash-separated.
	Path    string
	Content string
	Hash    string
}

// NewDocument builds a Document and computes its content hash.
func NewDocument(path, content string) Document {
	sum := sha256.Sum256([]byte(content))
	return Document{
		Path:    path,
		Content: content,
		Hash:    hex.EncodeToString(sum[:]),
	}
}
