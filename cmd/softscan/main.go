// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the softscan CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/softscan/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the softscan CLI.
var rootCmd = &cobra.Command{
	Use:   "softscan",
	Short: "Detect statistical-software mentions in PMC open-access articles",
	Long: `softscan fetches open-access biomedical articles from Europe PMC by
PMCID, extracts their readable text, and matches it against a catalog of
statistical-software detection patterns (R, SPSS, SAS, Stata, GraphPad Prism,
Python and its scientific libraries, MATLAB, Minitab, JMP, Jamovi, JASP, and
RevMan), reporting per-article detections with extracted versions plus
aggregate counts.

Scan a batch with "softscan scan PMC7096066 PMC8128124"; review saved runs
with "softscan history".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./softscan.yaml or ~/.config/softscan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("softscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "softscan"))
		}
	}

	viper.SetEnvPrefix("SOFTSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
