package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/MOYARU/mas/internal/app/reportctx"
	"github.com/MOYARU/mas/internal/app/ui"
	"github.com/MOYARU/mas/internal/firebase"
	"github.com/MOYARU/mas/internal/intel"
)

// PrintReportSummary writes the headline fields of a built report context.
func PrintReportSummary(rc *reportctx.Context) {
	fmt.Printf("%sPlatform: %s%s\n", ui.Color(ui.ColorWhite), rc.Platform, ui.Color(ui.ColorReset))

	for _, key := range []string{"app_name", "file_name", "package_id", "version_name"} {
		if v, ok := rc.Fields[key]; ok && v != "" {
			fmt.Printf("%s%s: %v%s\n", ui.Color(ui.ColorGray), key, v, ui.Color(ui.ColorReset))
		}
	}
	if score, ok := rc.Fields["security_score"]; ok {
		fmt.Printf("%sSecurity Score: %v/100%s\n", ui.Color(ui.ColorWhite), score, ui.Color(ui.ColorReset))
		fmt.Printf("%sAverage CVSS: %v%s\n", ui.Color(ui.ColorWhite), rc.Fields["average_cvss"], ui.Color(ui.ColorReset))
	}
	if ts, ok := rc.Fields["timestamp"].(time.Time); ok {
		fmt.Printf("%sLast Scan: %s%s\n", ui.Color(ui.ColorGray), ts.Format(time.RFC3339), ui.Color(ui.ColorReset))
	}
}

// WriteReportJSON dumps the full context next to the working directory so
// API-less deployments still get a machine-readable report.
func WriteReportJSON(rc *reportctx.Context, scanHash string) (string, error) {
	doc := map[string]any{
		"platform":   rc.Platform,
		"scan_hash":  scanHash,
		"report_dat": rc.Fields,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := fmt.Sprintf("mas_report_%s.json", scanHash)
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return name, nil
}

// IntelSummary is everything the source walk produced.
type IntelSummary struct {
	URLGroups     []intel.Group      `json:"url_groups"`
	EmailGroups   []intel.Group      `json:"email_groups"`
	SecretKeys    []string           `json:"secret_keys"`
	OpenDatabases []firebase.Finding `json:"open_databases"`
}

// WriteIntelJSON saves the summary for downstream tooling.
func WriteIntelJSON(sum *IntelSummary) (string, error) {
	raw, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode intel summary: %w", err)
	}
	name := "mas_intel.json"
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		return "", fmt.Errorf("write intel summary: %w", err)
	}
	return name, nil
}

// PrintIntel writes the extracted intelligence grouped per source file.
func PrintIntel(sum *IntelSummary) {
	if len(sum.URLGroups) == 0 && len(sum.EmailGroups) == 0 &&
		len(sum.SecretKeys) == 0 && len(sum.OpenDatabases) == 0 {
		fmt.Printf("%sNo secondary intelligence found.%s\n", ui.Color(ui.ColorGreen), ui.Color(ui.ColorReset))
		return
	}

	if len(sum.URLGroups) > 0 {
		fmt.Printf("\n%sURLs%s\n", ui.Color(ui.ColorWhite), ui.Color(ui.ColorReset))
		for _, g := range sum.URLGroups {
			fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGray), g.Path, ui.Color(ui.ColorReset))
			for _, u := range g.Items {
				fmt.Printf("  - %s\n", SanitizeURL(u))
			}
		}
	}

	if len(sum.EmailGroups) > 0 {
		fmt.Printf("\n%sEmails%s\n", ui.Color(ui.ColorWhite), ui.Color(ui.ColorReset))
		for _, g := range sum.EmailGroups {
			fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGray), g.Path, ui.Color(ui.ColorReset))
			for _, e := range g.Items {
				fmt.Printf("  - %s\n", e)
			}
		}
	}

	if len(sum.SecretKeys) > 0 {
		keys := append([]string(nil), sum.SecretKeys...)
		sort.Strings(keys)
		fmt.Printf("\n%sPossible hardcoded secrets%s\n", ui.Color(ui.ColorYellow), ui.Color(ui.ColorReset))
		for _, k := range keys {
			fmt.Printf("  - %s\n", k)
		}
	}

	if len(sum.OpenDatabases) > 0 {
		fmt.Printf("\n%sRealtime databases%s\n", ui.Color(ui.ColorWhite), ui.Color(ui.ColorReset))
		for _, f := range sum.OpenDatabases {
			if f.Open {
				fmt.Printf("  %s[OPEN]%s %s\n", ui.Color(ui.ColorRed), ui.Color(ui.ColorReset), f.URL)
			} else {
				fmt.Printf("  [closed] %s\n", f.URL)
			}
		}
	}
}
