// Package store defines how persisted scan records are looked up. One
// resolver exists per platform; callers decide the consultation order.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/MOYARU/mas/internal/report"
)

type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWindows Platform = "windows"
)

// ErrNotFound is returned when no record exists for a hash.
var ErrNotFound = errors.New("scan record not found")

// ScanRecord is one persisted static-analysis result, tagged with the
// platform whose store resolved it. CodeAnalysis and BinaryAnalysis are
// disjoint: which one is populated depends on what was submitted.
type ScanRecord struct {
	Platform       Platform
	FileName       string
	AppName        string
	PackageID      string
	VersionName    string
	CodeAnalysis   map[string]report.Finding
	BinaryAnalysis map[string]report.Finding
	// Extra carries the remaining renderer-facing columns verbatim.
	Extra map[string]any
}

// Resolver finds a scan record by its 32-char submission hash.
type Resolver interface {
	Platform() Platform
	FindByHash(ctx context.Context, hash string) (*ScanRecord, error)
}

// RecentScans tracks when a hash was last scanned.
type RecentScans interface {
	Timestamp(ctx context.Context, hash string) (time.Time, error)
	// Touch moves the hash's timestamp to now.
	Touch(ctx context.Context, hash string) error
}
