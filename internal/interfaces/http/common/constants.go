package common

const (
	// MaxEntryNameRunes limits the display name length to keep payloads sane.
	MaxEntryNameRunes = 100
	// MaxEntryRequestBody limits JSON request bodies for entry endpoints.
	MaxEntryRequestBody = 1 << 20
)
