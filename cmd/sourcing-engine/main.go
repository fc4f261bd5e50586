// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

// Package main is the entry point for the sourcing-engine CLI.
// Implements: prd001-research-queue, prd002-search, prd003-extraction,
//             prd004-supplier-store, prd005-scoring (CLI surface).
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fluxgen/sourcing-engine/internal/secrets"
	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the sourcing-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "sourcing-engine",
	Short: "Automated supplier discovery and scoring for manufacturing sourcing",
	Long: `sourcing-engine automates supplier research for the FluxGen sourcing
program. It works through a research queue of needed equipment and raw
materials: for each due item it builds a search query, asks an AI web
search backend for candidate supplier pages, extracts structured
supplier records from the results, deduplicates them into the supplier
store, and reschedules the item.

A separate scoring stage ranks persisted suppliers with a weighted
multi-factor quality score and letter grade.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; a missing file is not an error.
		godotenv.Load()

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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sourcing-engine.yaml or ~/.config/sourcing-engine/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database (default: data/fluxgen.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sourcing-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sourcing-engine"))
		}
	}

	viper.SetEnvPrefix("SOURCING_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// storeConfig resolves the database path from flag, config file, or default.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("store.db_path")
	}
	return types.StoreConfig{DBPath: dbPath}
}

// searchConfig resolves the search provider, model, and API key.
// A missing API key for the selected provider is a fatal configuration
// error: discovery cannot run without it.
func searchConfig() (types.SearchConfig, error) {
	cfg := types.SearchConfig{
		Provider:   types.SearchProvider(viper.GetString("search.provider")),
		Model:      viper.GetString("search.model"),
		APIKey:     viper.GetString("search.api_key"),
		MaxRetries: viper.GetInt("search.max_retries"),
	}
	cfg.Timeout = viper.GetDuration("search.timeout")
	cfg.UserAgent = viper.GetString("search.user_agent")

	if cfg.Provider == "" {
		cfg.Provider = types.ProviderClaude
	}

	switch cfg.Provider {
	case types.ProviderClaude:
		if cfg.Model == "" {
			cfg.Model = "claude-sonnet-4-20250514"
		}
		if cfg.APIKey == "" {
			cfg.APIKey = firstNonEmpty(os.Getenv("ANTHROPIC_API_KEY"), loadedSecrets["anthropic-api-key"])
		}
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("ANTHROPIC_API_KEY not found: set it in the environment, .env, or .secrets/anthropic-api-key")
		}
	case types.ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = "gpt-4o-mini"
		}
		if cfg.APIKey == "" {
			cfg.APIKey = firstNonEmpty(os.Getenv("OPENAI_API_KEY"), loadedSecrets["openai-api-key"])
		}
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("OPENAI_API_KEY not found: set it in the environment, .env, or .secrets/openai-api-key")
		}
	default:
		return cfg, fmt.Errorf("unsupported search provider %q: use claude or openai", cfg.Provider)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
