package main

import (
	"fmt"
	"os"

	"github.com/gnames/gnflora/internal/iocache"
	"github.com/gnames/gnflora/internal/ioconfig"
	"github.com/gnames/gnflora/internal/iohttp"
	"github.com/gnames/gnflora/internal/iologger"
	"github.com/gnames/gnflora/internal/iometa"
	"github.com/gnames/gnflora/pkg/config"
	"github.com/gnames/gnflora/pkg/flora"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gnflora",
		Short: "GNflora retrieves plant checklists and traits data",
		Long: `GNflora is a client for a versioned biodiversity web service that
serves plant checklists, species distributions, taxonomy and per-polygon
environmental summaries.

Main commands:
  - checklists: retrieve and filter checklist metadata for a taxon
  - env: merge environmental variables into one polygon-indexed table
  - version: show client version or resolve the latest API version

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNFLORA_*)
  3. Config file (~/.config/gnflora/config.yaml)
  4. Built-in defaults`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}
				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			cfg.Update([]config.Option{config.OptHomeDir(home)})

			logDir := config.LogDir(home)
			if err = os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
			return iologger.Init(logDir, cfg.Log, true)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/gnflora/config.yaml)")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnflora")

	rootCmd.AddCommand(getChecklistsCmd())
	rootCmd.AddCommand(getEnvCmd())
	rootCmd.AddCommand(getVersionCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *config.Config {
	return cfg
}

// buildClient wires transport, cache and providers into the client facade.
func buildClient(cfg *config.Config) (*flora.Client, error) {
	var cache iohttp.Cache
	if cfg.Cache.Enabled {
		c, err := iocache.New(config.CacheDir(cfg.HomeDir), cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		cache = c
	}

	fetcher := iohttp.New(cfg, cache).WithProgress()
	provider := iometa.New(fetcher)

	return flora.New(cfg, provider, provider, provider, provider), nil
}
