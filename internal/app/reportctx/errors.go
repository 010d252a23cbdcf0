package reportctx

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHash rejects anything that is not 32 lowercase hex chars.
	ErrInvalidHash = errors.New("invalid scan hash")
	// ErrReportNotFound means no platform store has a record for the hash.
	ErrReportNotFound = errors.New("report not found")
	// ErrSameHash rejects comparing a scan result against itself.
	ErrSameHash = errors.New("results with same hash cannot be compared")
)

// ReportGenerationError is the classified, user-safe form of any downstream
// failure during report building. Cause carries the failing error's message
// only; the full chain stays in the logs.
type ReportGenerationError struct {
	Message string
	Cause   string
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}
