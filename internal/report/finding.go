package report

import "fmt"

// Severity values as emitted by the platform analyzers. Only high, warning
// and good move the security score; info and secure are carried for display.
const (
	SeverityHigh    = "high"
	SeverityWarning = "warning"
	SeverityGood    = "good"
	SeverityInfo    = "info"
	SeveritySecure  = "secure"
)

// FindingDetails is the scored part of a finding: the fields the scorer and
// the report templates actually consume.
type FindingDetails struct {
	Severity    string  `json:"severity"`
	CVSS        float64 `json:"cvss,omitempty"`
	CWE         string  `json:"cwe,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Finding is one static-analysis rule result. Android and iOS source scans
// wrap the scored fields in Metadata; iOS binary scan results carry them flat
// on the finding itself. Details resolves the two shapes.
type Finding struct {
	Severity    string          `json:"severity,omitempty"`
	CVSS        float64         `json:"cvss,omitempty"`
	CWE         string          `json:"cwe,omitempty"`
	Description string          `json:"description,omitempty"`
	Files       []string        `json:"files,omitempty"`
	Metadata    *FindingDetails `json:"metadata,omitempty"`
}

// Details returns the effective severity/CVSS record. A present, non-empty
// Metadata wins; otherwise the flat fields are used.
func (f Finding) Details() FindingDetails {
	if f.Metadata != nil && *f.Metadata != (FindingDetails{}) {
		return *f.Metadata
	}
	return FindingDetails{
		Severity:    f.Severity,
		CVSS:        f.CVSS,
		CWE:         f.CWE,
		Description: f.Description,
	}
}

// MalformedFindingError reports analyzer output that carries no severity in
// either shape. Such findings must not be silently skipped: they indicate a
// broken analyzer run, not a benign result.
type MalformedFindingError struct {
	ID string
}

func (e *MalformedFindingError) Error() string {
	return fmt.Sprintf("finding %q has no severity", e.ID)
}
