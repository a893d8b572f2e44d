package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyFile    = errors.New("file has no content")
	ErrMissingName  = errors.New("file name is required")
	ErrNoFiles      = errors.New("at least one file is required")
	ErrBlobNotFound = errors.New("blob not found")
)

// File is a binary payload waiting to be uploaded.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Validate rejects files the blob service would refuse.
func (f File) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrMissingName
	}
	if len(f.Data) == 0 {
		return ErrEmptyFile
	}
	return nil
}

// Intent records a blob that was uploaded but is not yet referenced by a
// persisted record. Intents older than the grace period mark orphans.
type Intent struct {
	URL       string
	CreatedAt time.Time
}

// ReconcileReport summarizes one orphan sweep.
type ReconcileReport struct {
	Scanned int
	Deleted []string
	Failed  []string
}
