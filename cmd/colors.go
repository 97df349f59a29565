package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatStatusWithColor(status string) string {
	switch strings.ToLower(status) {
	case "pass", "ok", "success":
		return colorSuccess(status)
	case "warning", "warn":
		return colorWarn(status)
	case "fail", "failed", "error":
		return colorError(status)
	default:
		return status
	}
}

func formatScoreWithColor(score int, label string) string {
	switch {
	case score >= 80:
		return colorSuccess(label)
	case score >= 50:
		return colorWarn(label)
	default:
		return colorError(label)
	}
}
