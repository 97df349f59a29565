package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	consts "github.com/buihoanganh/webcheck/internal/shared/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "
)

var cfgFile string
var logger *zap.SugaredLogger
var backendURL string
var resultsDir string
var scanTimeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "webcheck",
	Short: "Domain security posture scanner front-end (SSL, headers, ports, subdomains)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".webcheck")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("WEBCHECK")
		viper.AutomaticEnv()

		_ = viper.ReadInConfig()

		// flag wins over config/env
		if backendURL == "" {
			backendURL = viper.GetString("backend_url")
		}

		resultsDir = viper.GetString("results_dir")
		if resultsDir == "" {
			resultsDir = "./results"
		}
		if err := os.MkdirAll(resultsDir, consts.DefaultDirPerm); err != nil {
			return fmt.Errorf("failed to create results directory: %s", err.Error())
		}

		scanTimeout = viper.GetDuration("scan_timeout")
		if scanTimeout <= 0 {
			scanTimeout = consts.ScanTimeout
		}

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		// Make final resultsDir absolute (for clarity in logs)
		if abs, err := filepath.Abs(resultsDir); err == nil {
			resultsDir = abs
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.webcheck.yaml)")

	// backend base URL; an empty value means every scan falls back to
	// synthetic findings
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "scanner backend base URL (or set backend_url in config)")

	// add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
