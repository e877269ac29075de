package envdata

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// RasterSpec requests one or more summary statistics over one raster
// layer. Each spec produces one column per statistic, named by combining
// the statistic and the layer identifier.
type RasterSpec struct {
	Layer string
	Stats []string
}

// ColumnName builds the output column name for one statistic over one
// layer, e.g. "mean" over "temperature" becomes "mean_temperature".
func ColumnName(stat, layer string) string {
	return fmt.Sprintf("%s_%s", stat, layer)
}

// Source fetches environmental tables from the data service.
type Source interface {
	// MiscTable returns the table of miscellaneous per-polygon variables,
	// one column per requested variable.
	MiscTable(ctx context.Context, vars []string) (Table, error)

	// RasterTable returns one table for a raster spec, with one column
	// per requested statistic, named per ColumnName.
	RasterTable(ctx context.Context, spec RasterSpec) (Table, error)
}

// Meta exposes the recognized-domain enumerations for validation.
type Meta interface {
	MiscVariables(ctx context.Context) ([]string, error)
	RasterLayers(ctx context.Context) ([]string, error)
	SummaryStats(ctx context.Context) ([]string, error)
}

// Aggregate fetches the miscellaneous-variable table plus one table per
// raster spec and merges them into a single polygon-indexed table.
//
// All variable, layer and statistic names are validated against the
// metadata collaborator before any data is fetched; an unknown name fails
// the whole call. Raster fetches run concurrently (up to jobs workers),
// but the output column order follows miscVars and the rasterSpecs order,
// so results are deterministic. A transport failure in any one fetch
// aborts the whole call: partial data is never silently substituted.
//
// After the outer join, rows with only nulls are dropped, and when
// entityIDs is non-empty the output is restricted to that set.
func Aggregate(
	ctx context.Context,
	src Source,
	meta Meta,
	entityIDs []int,
	miscVars []string,
	rasterSpecs []RasterSpec,
	jobs int,
) (Table, error) {
	if err := validate(ctx, meta, miscVars, rasterSpecs); err != nil {
		return Table{}, err
	}

	tables := make([]Table, len(rasterSpecs)+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	if len(miscVars) > 0 {
		g.Go(func() error {
			t, err := src.MiscTable(ctx, miscVars)
			if err != nil {
				return err
			}
			tables[0] = t
			return nil
		})
	} else {
		tables[0] = NewTable()
	}

	for i, spec := range rasterSpecs {
		g.Go(func() error {
			t, err := src.RasterTable(ctx, spec)
			if err != nil {
				return err
			}
			tables[i+1] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Table{}, err
	}

	res := OuterJoin(tables...)
	res = res.DropAllNull()
	res = res.Restrict(entityIDs)

	if len(res.Rows) == 0 {
		slog.Warn("Environmental aggregation produced no rows",
			"misc_vars", len(miscVars), "raster_specs", len(rasterSpecs))
	}

	return res, nil
}

func validate(
	ctx context.Context,
	meta Meta,
	miscVars []string,
	rasterSpecs []RasterSpec,
) error {
	if len(miscVars) > 0 {
		known, err := meta.MiscVariables(ctx)
		if err != nil {
			return err
		}
		for _, v := range miscVars {
			if !slices.Contains(known, v) {
				return VariableUnknownError(v)
			}
		}
	}

	if len(rasterSpecs) == 0 {
		return nil
	}

	layers, err := meta.RasterLayers(ctx)
	if err != nil {
		return err
	}
	stats, err := meta.SummaryStats(ctx)
	if err != nil {
		return err
	}
	for _, spec := range rasterSpecs {
		if !slices.Contains(layers, spec.Layer) {
			return LayerUnknownError(spec.Layer)
		}
		for _, st := range spec.Stats {
			if !slices.Contains(stats, st) {
				return StatUnknownError(st)
			}
		}
	}

	return nil
}
