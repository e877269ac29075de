package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gnflora/pkg/envdata"
	"github.com/gnames/gnflora/pkg/flora"
	"github.com/spf13/cobra"
)

var (
	envEntityIDs []int
	envMiscVars  []string
	envRasters   []string
)

func getEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Merge environmental variables into one polygon table",
		Long: `Fetch miscellaneous per-polygon variables and raster summary
statistics and merge them into a single polygon-indexed table.

Raster requests use layer:stat1+stat2 syntax; each statistic becomes a
column named stat_layer. Tables are joined with a full outer join on the
polygon identifier, and rows with no data at all are dropped.

Examples:
  gnflora env --misc biome,perimeter
  gnflora env --raster wc2.0_bio_30s_01:mean+sd --entity-id 145,146`,
		RunE: runEnv,
	}

	cmd.Flags().IntSliceVar(&envEntityIDs, "entity-id", nil,
		"restrict output to these polygon IDs")
	cmd.Flags().StringSliceVar(&envMiscVars, "misc", nil,
		"miscellaneous variables to include")
	cmd.Flags().StringSliceVar(&envRasters, "raster", nil,
		"raster requests as layer:stat1+stat2")

	return cmd
}

func runEnv(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	specs, err := parseRasterSpecs(envRasters)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	table, err := client.Env(ctx, flora.EnvQuery{
		EntityIDs:   envEntityIDs,
		MiscVars:    envMiscVars,
		RasterSpecs: specs,
	})
	if err != nil {
		return err
	}

	printTable(table)
	return nil
}

func parseRasterSpecs(args []string) ([]envdata.RasterSpec, error) {
	specs := make([]envdata.RasterSpec, 0, len(args))
	for _, arg := range args {
		layer, stats, ok := strings.Cut(arg, ":")
		if !ok || layer == "" || stats == "" {
			return nil, fmt.Errorf(
				"invalid raster request %q, expected layer:stat1+stat2", arg,
			)
		}
		specs = append(specs, envdata.RasterSpec{
			Layer: layer,
			Stats: strings.Split(stats, "+"),
		})
	}
	return specs, nil
}

func printTable(table envdata.Table) {
	header := append([]string{"entity_ID"}, table.Columns...)
	fmt.Println(strings.Join(header, "\t"))

	for _, id := range table.EntityIDs() {
		fields := make([]string, 0, len(header))
		fields = append(fields, fmt.Sprintf("%d", id))
		for _, col := range table.Columns {
			if v, ok := table.Get(id, col); ok {
				fields = append(fields, fmt.Sprintf("%v", v))
			} else {
				fields = append(fields, "NA")
			}
		}
		fmt.Println(strings.Join(fields, "\t"))
	}
}
