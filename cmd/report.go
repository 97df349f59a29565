package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buihoanganh/webcheck/internal/report"
	"github.com/buihoanganh/webcheck/internal/scan"
	consts "github.com/buihoanganh/webcheck/internal/shared/constants"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a security report from a saved scan result",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		rawFormat, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		if input == "" {
			return fmt.Errorf("--input is required")
		}
		format, err := report.ParseFormat(rawFormat)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("failed to read scan result: %w", err)
		}
		var result scan.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("failed to parse scan result: %w", err)
		}
		// Saved files may predate the canonical vocabulary or have been
		// hand-edited; normalize before scoring.
		result.Normalize()

		metrics := scan.ComputeMetrics(&result)
		doc, err := report.Render(&result, metrics, report.Options{Format: format})
		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		if output == "" {
			output = filepath.Join(resultsDir, doc.Filename)
		}
		if err := os.WriteFile(output, doc.Data, consts.DefaultFilePerm); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		fmt.Printf("Report generated: %s\n", output)
		fmt.Printf("Format: %s\n", format)
		fmt.Printf("Score: %d/100 (%s)\n", metrics.Score, metrics.StatusLabel())
		if result.Synthetic {
			fmt.Printf("%s this report was built from synthetic findings\n", colorWarn("!"))
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("input", "", "Path to a saved scan result JSON file (required)")
	reportCmd.Flags().String("format", string(report.FormatPDF), "Report format (json, md, html, pdf)")
	reportCmd.Flags().String("output", "", "Path for the rendered report (default <results_dir>/<domain>_security_report.<ext>)")
}
