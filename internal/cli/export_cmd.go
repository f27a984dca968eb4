package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pathnottaken-go/internal/model"
	"pathnottaken-go/internal/report"
)

func newExportCmd(app *App) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a saved JSON result as a PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if in == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(in)
			}
			if err != nil {
				return fmt.Errorf("reading result: %w", err)
			}

			result, err := model.ValidateResult(raw)
			if err != nil {
				return fmt.Errorf("result cannot be exported: %w", err)
			}

			if err := writePDF(out, result, app.now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "PDF written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "-", "JSON result file, - for stdin")
	cmd.Flags().StringVar(&out, "out", report.Filename, "Output PDF path")
	return cmd
}

func writePDF(path string, result *model.SimulationResult, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := report.RenderPDF(f, result, report.Options{GeneratedAt: now, Compress: true}); err != nil {
		f.Close()
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return f.Close()
}
