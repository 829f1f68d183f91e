package store

import "time"

// File is one cached scan result.
type File struct {
	ID           int64
	Path         string
	Hash         string
	IncludeCount int
	ScannedAt    time.Time
}
