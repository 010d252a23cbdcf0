package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MOYARU/mas/internal/app/output"
	"github.com/MOYARU/mas/internal/app/reportctx"
	"github.com/MOYARU/mas/internal/app/ui"
	"github.com/MOYARU/mas/internal/config"
	"github.com/MOYARU/mas/internal/logging"
	msges "github.com/MOYARU/mas/internal/messages"
)

var (
	reportJSON bool
	reportPDF  bool
)

var reportCmd = &cobra.Command{
	Use:   "report <scan-hash>",
	Short: "Build the report context for a finished scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args[0])
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Write the full report context as JSON")
	reportCmd.Flags().BoolVar(&reportPDF, "pdf", false, "Write a PDF report (requires wkhtmltopdf)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, scanHash string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New("report", verbose)

	builder, cleanup, err := newBuilder(cmd.Context(), settings, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGray), msges.GetUIMessage("ReportBuilding", scanHash), ui.Color(ui.ColorReset))

	rc, err := builder.BuildContext(cmd.Context(), scanHash)
	switch {
	case errors.Is(err, reportctx.ErrInvalidHash), errors.Is(err, reportctx.ErrReportNotFound):
		return err
	case err != nil:
		return errors.New(msges.GetUIMessage("ReportFailed", err))
	}

	output.PrintReportSummary(rc)

	if reportJSON {
		name, err := output.WriteReportJSON(rc, scanHash)
		if err != nil {
			return err
		}
		fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGreen), msges.GetUIMessage("ReportSaved", name), ui.Color(ui.ColorReset))
	}

	if reportPDF {
		if !builder.CanRenderPDF() {
			return errors.New(msges.GetUIMessage("PDFUnavailable"))
		}
		pdf, err := builder.RenderPDF(cmd.Context(), rc)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("mas_report_%s.pdf", scanHash)
		if err := os.WriteFile(name, pdf, 0o644); err != nil {
			return fmt.Errorf("write PDF report: %w", err)
		}
		fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGreen), msges.GetUIMessage("ReportSaved", name), ui.Color(ui.ColorReset))
	}
	return nil
}
