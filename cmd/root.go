/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MOYARU/mas/internal/app/ui"
	appver "github.com/MOYARU/mas/internal/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mas",
	Short: "MAS is the reporting and aggregation core of a mobile app security scanner: it scores static-analysis findings for Android, iOS and Windows app packages, extracts secondary intelligence (URLs, emails, hardcoded-secret candidates, exposed realtime databases) from decompiled source, and assembles renderable scan reports.",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = appver.Value
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.Long = ui.AsciiArt + `
MAS is the post-analysis reporting core of a mobile app security scanner.

Usage:
  mas report <scan-hash> [--json|--pdf]
  mas compare <hash1> <hash2>
  mas intel <dir-or-zip>

Example:
  mas report 0f5c1e3b9a2d4c6e8f0a1b2c3d4e5f60 --json
  mas intel ./extracted-sources

Scan records come from the database configured via DATABASE_URL; without it,
report lookups run against empty in-memory stores (useful for smoke tests).
`
}
