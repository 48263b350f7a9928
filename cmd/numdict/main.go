// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the numdict CLI.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the numdict CLI.
var rootCmd = &cobra.Command{
	Use:   "numdict",
	Short: "Find numbers in text and put them in human terms",
	Long: `numdict finds numbers and their units in text, HTML and Markdown
documents ("5 km", "$3.50", "3 degrees celsius") and can look up a
human-scale comparison for each one ("about 50 football fields").

Use scan to list the numbers in a document, compare to add comparisons,
cache to inspect the comparison cache, and serve to run the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd)

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logging.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		logging.SetDefault(log)

		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug("using config file", logging.String("path", used))
		}
		if len(s) > 0 {
			log.Debug("loaded secrets", logging.Any("keys", s.Keys()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Default().Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./numdict.yaml or ~/.config/numdict/numdict.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of credential files")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("numdict")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "numdict"))
		}
	}

	viper.SetEnvPrefix("NUMDICT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	// A missing config file is fine; defaults and env apply.
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
