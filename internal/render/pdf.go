package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// pdfTool converts rendered HTML to PDF. It is optional on purpose: report
// hosts without it still serve JSON/HTML reports.
const pdfTool = "wkhtmltopdf"

// PDFCapability wraps the external HTML-to-PDF converter. A nil capability
// means PDF output is unavailable and callers must say so explicitly.
type PDFCapability struct {
	binPath string
	proxy   string
}

// DetectPDF probes PATH for the converter. proxy is passed through so the
// tool can fetch remote assets the same way the probes do.
func DetectPDF(proxy string) *PDFCapability {
	path, err := exec.LookPath(pdfTool)
	if err != nil {
		return nil
	}
	return &PDFCapability{binPath: path, proxy: proxy}
}

// FromHTML runs the converter over html on stdin and returns the PDF bytes.
func (p *PDFCapability) FromHTML(ctx context.Context, html []byte) ([]byte, error) {
	args := []string{
		"--page-size", "Letter",
		"--quiet",
		"--enable-local-file-access",
		"--no-collate",
		"--margin-top", "0.50in",
		"--margin-right", "0.50in",
		"--margin-bottom", "0.50in",
		"--margin-left", "0.50in",
		"--encoding", "UTF-8",
		"--orientation", "Landscape",
		"--custom-header", "Accept-Encoding", "gzip",
		"--no-outline",
	}
	if p.proxy != "" {
		args = append(args, "--proxy", p.proxy)
	}
	args = append(args, "-", "-")

	cmd := exec.CommandContext(ctx, p.binPath, args...)
	cmd.Stdin = bytes.NewReader(html)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s", pdfTool, detail)
	}
	return out.Bytes(), nil
}
