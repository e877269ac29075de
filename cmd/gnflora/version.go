package main

import (
	"context"
	"fmt"

	"github.com/gnames/gnflora/internal/iohttp"
	"github.com/gnames/gnflora/internal/iometa"
	"github.com/spf13/cobra"
)

var versionRemote bool

func getVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show client version or resolve the latest API version",
		Long: `Show the gnflora version. With --remote, ask the service for its
latest API version instead; pin the result in the config file to keep
queries reproducible.`,
		RunE: runVersion,
	}

	cmd.Flags().BoolVar(&versionRemote, "remote", false,
		"resolve the latest API version from the service")

	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	if !versionRemote {
		fmt.Printf("gnflora %s\n", Version)
		return nil
	}

	cfg := getConfig()
	fetcher := iohttp.New(cfg, nil)
	provider := iometa.New(fetcher)

	latest, err := provider.Latest(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Latest API version: %s\n", latest)
	return nil
}
