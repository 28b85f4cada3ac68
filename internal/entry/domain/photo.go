package domain

import "time"

// Photo stores uploaded file metadata for one entry. Photos live in their own
// collection; deleting an entry removes them as well.
type Photo struct {
	ID          string
	EntryID     string
	StoredPath  string
	PublicURL   string
	ContentType string
	UploadedAt  time.Time
}
