package messages

import "fmt"

var uiMessages = map[string]string{
	"ReportBuilding":    "Building report context for %s",
	"ReportSaved":       "Report written to %s",
	"ReportFailed":      "Report generation failed: %v",
	"PDFUnavailable":    "PDF tooling not found on this host; use --json instead",
	"CompareValidated":  "Hashes %s and %s are valid for comparison",
	"CompareRejected":   "Comparison rejected: %v",
	"IntelScanning":     "Scanning extracted source under %s",
	"IntelProbing":      "Probing %d realtime database URL(s)",
	"IntelProbeStats":   "%d probe request(s) in %.2fs",
	"IntelWalkFailed":   "Source walk failed: %v",
	"StoreUnavailable":  "No DATABASE_URL configured; using empty in-memory stores",
	"StoreConnectError": "Cannot connect to database: %v",
}

// GetUIMessage formats a console message by ID. Unknown IDs come back
// verbatim so a missing catalog entry is visible instead of silent.
func GetUIMessage(id string, args ...any) string {
	msg, ok := uiMessages[id]
	if !ok {
		return id
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
