package report

import "math"

// ScoreResult is the aggregate risk summary for one scan.
type ScoreResult struct {
	AverageCVSS   float64 `json:"average_cvss"`
	SecurityScore int     `json:"security_score"`
}

// Score reduces a scan's findings to an average CVSS and a security score.
// The score starts at 100 and moves per finding: high -15, warning -10,
// good +5; every other severity is neutral. A CVSS of zero means "no CVSS
// assigned" and is excluded from the average. The floor is 10, never 0: an
// app that went negative is reported as 10/100.
func Score(findings map[string]Finding) (ScoreResult, error) {
	appScore := 100
	var cvssSum float64
	var cvssCount int

	for id, finding := range findings {
		d := finding.Details()
		if d.Severity == "" {
			return ScoreResult{}, &MalformedFindingError{ID: id}
		}
		if d.CVSS != 0 {
			cvssSum += d.CVSS
			cvssCount++
		}
		switch d.Severity {
		case SeverityHigh:
			appScore -= 15
		case SeverityWarning:
			appScore -= 10
		case SeverityGood:
			appScore += 5
		}
	}

	var avg float64
	if cvssCount > 0 {
		avg = math.Round(cvssSum/float64(cvssCount)*10) / 10
	}
	if appScore < 0 {
		appScore = 10
	} else if appScore > 100 {
		appScore = 100
	}
	return ScoreResult{AverageCVSS: avg, SecurityScore: appScore}, nil
}
