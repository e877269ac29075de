package iometa

import (
	"context"
	"net/url"
	"strings"

	"github.com/gnames/gnflora/pkg/envdata"
)

// Summary statistics the service computes over raster layers.
var summaryStats = []string{
	"min", "max", "mean", "median", "sd", "n",
}

// MiscVariables returns the recognized miscellaneous variable names.
func (p *Provider) MiscVariables(ctx context.Context) ([]string, error) {
	rows, err := p.f.Fetch(ctx, queryEnvMiscMeta, url.Values{})
	if err != nil {
		return nil, err
	}

	vars := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := toString(row["variable"]); ok {
			vars = append(vars, name)
		}
	}

	return vars, nil
}

// RasterLayers returns the recognized raster layer identifiers.
func (p *Provider) RasterLayers(ctx context.Context) ([]string, error) {
	rows, err := p.f.Fetch(ctx, queryRasterMeta, url.Values{})
	if err != nil {
		return nil, err
	}

	layers := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := toString(row["layer_name"]); ok {
			layers = append(layers, name)
		}
	}

	return layers, nil
}

// SummaryStats returns the statistics the service can compute per layer.
// The set is fixed by the service contract, so no network call is needed.
func (p *Provider) SummaryStats(ctx context.Context) ([]string, error) {
	return summaryStats, nil
}

// MiscTable fetches the miscellaneous-variable table, projected to the
// requested variables.
func (p *Provider) MiscTable(
	ctx context.Context,
	vars []string,
) (envdata.Table, error) {
	params := url.Values{}
	params.Set("envvar", strings.Join(vars, ","))

	rows, err := p.f.Fetch(ctx, queryEnvMisc, params)
	if err != nil {
		return envdata.Table{}, err
	}

	table := envdata.NewTable(vars...)
	for _, row := range rows {
		id, ok := toInt(row["entity_ID"])
		if !ok {
			continue
		}
		for _, name := range vars {
			if v, present := row[name]; present && v != nil {
				table.Set(id, name, v)
			}
		}
	}

	return table, nil
}

// RasterTable fetches summary statistics for one raster layer. The service
// returns one column per statistic named by the statistic alone; columns
// are renamed to the stat_layer convention so tables from different layers
// can be joined without collisions.
func (p *Provider) RasterTable(
	ctx context.Context,
	spec envdata.RasterSpec,
) (envdata.Table, error) {
	params := url.Values{}
	params.Set("layername", spec.Layer)
	params.Set("sumstat", strings.Join(spec.Stats, ","))

	rows, err := p.f.Fetch(ctx, queryEnvRaster, params)
	if err != nil {
		return envdata.Table{}, err
	}

	columns := make([]string, len(spec.Stats))
	for i, stat := range spec.Stats {
		columns[i] = envdata.ColumnName(stat, spec.Layer)
	}

	table := envdata.NewTable(columns...)
	for _, row := range rows {
		id, ok := toInt(row["entity_ID"])
		if !ok {
			continue
		}
		for i, stat := range spec.Stats {
			if v, present := row[stat]; present && v != nil {
				table.Set(id, columns[i], v)
			}
		}
	}

	return table, nil
}
