package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MOYARU/mas/internal/app/output"
	"github.com/MOYARU/mas/internal/app/ui"
	"github.com/MOYARU/mas/internal/archive"
	"github.com/MOYARU/mas/internal/config"
	"github.com/MOYARU/mas/internal/engine"
	"github.com/MOYARU/mas/internal/firebase"
	"github.com/MOYARU/mas/internal/intel"
	"github.com/MOYARU/mas/internal/logging"
	msges "github.com/MOYARU/mas/internal/messages"
)

var intelJSON bool

var intelCmd = &cobra.Command{
	Use:   "intel <dir-or-zip>",
	Short: "Extract URLs, emails and secret candidates from extracted source, and probe detected realtime databases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntel(cmd, args[0])
	},
}

func init() {
	intelCmd.Flags().BoolVar(&intelJSON, "json", false, "Write the intel summary as JSON")
	rootCmd.AddCommand(intelCmd)
}

// Source and config formats worth scanning for embedded endpoints/keys.
var intelExtensions = map[string]bool{
	".java": true, ".kt": true, ".m": true, ".swift": true,
	".xml": true, ".plist": true, ".json": true, ".js": true,
	".properties": true, ".yaml": true, ".yml": true, ".txt": true,
}

const maxIntelFileBytes = 2 << 20

// Identifier positions that may name a secret: XML resource names and
// quoted JSON/plist keys. The quote is kept on JSON keys so the quoted-key
// vocabulary variants apply.
var candidateKeyRegex = regexp.MustCompile(`name="([^"]{1,60})"|"([^"]{1,60})"\s*:`)

func runIntel(cmd *cobra.Command, target string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New("intel", verbose)

	root, err := resolveIntelRoot(target)
	if err != nil {
		return err
	}
	fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGray), msges.GetUIMessage("IntelScanning", root), ui.Color(ui.ColorReset))

	sum, err := collectIntel(root)
	if err != nil {
		return fmt.Errorf("%s", msges.GetUIMessage("IntelWalkFailed", err))
	}

	var allURLs []string
	for _, g := range sum.URLGroups {
		allURLs = append(allURLs, g.Items...)
	}
	if len(allURLs) > 0 {
		client, err := probeClient(settings)
		if err != nil {
			return err
		}
		metrics := &engine.MetricsTransport{Base: client.Transport}
		client.Transport = metrics

		prober := firebase.NewProber(client, logger, settings.ProbeConcurrency)
		if candidates := firebase.Candidates(allURLs); len(candidates) > 0 {
			fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGray),
				msges.GetUIMessage("IntelProbing", len(candidates)), ui.Color(ui.ColorReset))
		}
		sum.OpenDatabases = prober.Scan(cmd.Context(), allURLs)

		if requests, dur := metrics.Snapshot(); requests > 0 {
			fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGray),
				msges.GetUIMessage("IntelProbeStats", requests, dur.Seconds()), ui.Color(ui.ColorReset))
		}
	}

	output.PrintIntel(sum)

	if intelJSON {
		name, err := output.WriteIntelJSON(sum)
		if err != nil {
			return err
		}
		fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGreen), msges.GetUIMessage("ReportSaved", name), ui.Color(ui.ColorReset))
	}
	return nil
}

// resolveIntelRoot unzips archive submissions and narrows to the app's
// source folder when one of the known layouts is present.
func resolveIntelRoot(target string) (string, error) {
	root := target
	if strings.HasSuffix(strings.ToLower(target), ".zip") {
		dest, err := os.MkdirTemp("", "mas-intel-*")
		if err != nil {
			return "", err
		}
		if _, err := archive.Unzip(target, dest); err != nil {
			return "", err
		}
		root = dest
	}

	if src, err := archive.FindSourceRoot(root); err == nil {
		return src.Path, nil
	}
	return root, nil
}

func collectIntel(root string) (*output.IntelSummary, error) {
	sum := &output.IntelSummary{}
	seenSecrets := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !intelExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxIntelFileBytes {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		text := string(raw)

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		res := intel.Extract(text, rel)
		sum.URLGroups = append(sum.URLGroups, res.URLGroups...)
		sum.EmailGroups = append(sum.EmailGroups, res.EmailGroups...)

		for _, m := range candidateKeyRegex.FindAllStringSubmatch(text, -1) {
			key := m[1]
			if key == "" {
				// JSON/plist key: keep the closing quote for the heuristic.
				key = m[2] + `"`
			}
			if !intel.LooksLikeSecret(key) {
				continue
			}
			display := strings.TrimSuffix(key, `"`)
			if _, ok := seenSecrets[display]; ok {
				continue
			}
			seenSecrets[display] = struct{}{}
			sum.SecretKeys = append(sum.SecretKeys, display)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}
