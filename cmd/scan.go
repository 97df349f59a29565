package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/buihoanganh/webcheck/internal/backend"
	"github.com/buihoanganh/webcheck/internal/orchestrator"
	"github.com/buihoanganh/webcheck/internal/scan"
	consts "github.com/buihoanganh/webcheck/internal/shared/constants"
	"github.com/buihoanganh/webcheck/internal/synth"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a security posture scan against a domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")
		checks, _ := cmd.Flags().GetStringSlice("checks")
		asJSON, _ := cmd.Flags().GetBool("json")
		output, _ := cmd.Flags().GetString("output")

		if domain == "" {
			return fmt.Errorf("--domain is required")
		}
		categories, err := scan.ParseCategories(checks)
		if err != nil {
			return err
		}

		if !asJSON {
			printBanner()
		}

		zl := logger.Desugar()
		client := backend.NewClient(backendURL, scanTimeout, zl)
		orch := orchestrator.New(client, synth.Generator{}, scanTimeout, zl)

		result, err := orch.Run(cmd.Context(), domain, categories)
		if err != nil {
			return err
		}
		metrics := scan.ComputeMetrics(result)

		data, err := json.MarshalIndent(result, jsonPrefix, jsonIndent)
		if err != nil {
			return fmt.Errorf("failed to encode scan result: %w", err)
		}

		if asJSON {
			fmt.Println(string(data))
		} else {
			printScanSummary(result, metrics)
		}

		if output == "" {
			name := strings.ReplaceAll(domain, ".", "_") + "_scan.json"
			output = filepath.Join(resultsDir, name)
		}
		if err := os.WriteFile(output, data, consts.DefaultFilePerm); err != nil {
			return fmt.Errorf("failed to write scan result: %w", err)
		}
		if !asJSON {
			fmt.Printf("\n%s Result saved: %s\n", colorInfo("→"), output)
			fmt.Printf("%s Generate a report with: webcheck report --input %s --format pdf\n", colorInfo("→"), output)
		}
		return nil
	},
}

func printScanSummary(result *scan.Result, metrics scan.Metrics) {
	fmt.Printf("Domain:    %s\n", result.Domain)
	fmt.Printf("Scan Date: %s\n", result.Timestamp.Format("2006-01-02 15:04:05"))
	if result.Synthetic {
		fmt.Printf("%s scanner backend unavailable, findings below are synthetic placeholders\n", colorWarn("!"))
	}
	fmt.Println()

	scoreLabel := fmt.Sprintf("%d/100 (%s, risk %s)", metrics.Score, metrics.StatusLabel(), metrics.RiskLevel())
	fmt.Printf("Security Score: %s\n", formatScoreWithColor(metrics.Score, scoreLabel))
	fmt.Printf("Checks: %s pass / %s warning / %s fail (total %d)\n\n",
		colorSuccess(metrics.PassCount), colorWarn(metrics.WarningCount), colorError(metrics.FailCount),
		metrics.TotalFindings)

	for _, c := range result.Requested() {
		counts := metrics.PerCategory[c]
		fmt.Printf("%s  [%d pass, %d warning, %d fail]\n", c.Title(), counts.Pass, counts.Warning, counts.Fail)
		for _, f := range result.Findings(c) {
			fmt.Printf("  [%s] %s: %s\n", formatStatusWithColor(string(f.Status)), f.Name, f.Description)
			if f.Details != "" {
				fmt.Printf("         %s\n", f.Details)
			}
		}
		fmt.Println()
	}

	if critical := scan.CriticalIssues(result); len(critical) > 0 {
		fmt.Printf("%s Critical issues:\n", colorError("!"))
		for _, issue := range critical {
			fmt.Printf("  - [%s] %s\n", issue.Category, issue.Finding.Name)
		}
	}
}

func init() {
	scanCmd.Flags().String("domain", "", "Domain to scan (required)")
	scanCmd.Flags().StringSlice("checks", categoryNames(), "Scan categories to run")
	scanCmd.Flags().Bool("json", false, "Print the raw scan result JSON instead of the summary")
	scanCmd.Flags().String("output", "", "Path for the saved scan result (default <results_dir>/<domain>_scan.json)")
}

func categoryNames() []string {
	names := make([]string, 0, len(scan.Categories))
	for _, c := range scan.Categories {
		names = append(names, string(c))
	}
	return names
}
