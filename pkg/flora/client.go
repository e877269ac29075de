package flora

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnflora/pkg/checklist"
	"github.com/gnames/gnflora/pkg/config"
	"github.com/gnames/gnflora/pkg/envdata"
	"github.com/gnames/gnflora/pkg/spatial"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// Client runs the retrieval workflows over the collaborator interfaces.
type Client struct {
	cfg   *config.Config
	taxa  TaxonomyProvider
	lists ChecklistProvider
	env   envdata.Source
	meta  envdata.Meta
}

// New creates a Client over the given collaborators.
func New(
	cfg *config.Config,
	taxa TaxonomyProvider,
	lists ChecklistProvider,
	env envdata.Source,
	meta envdata.Meta,
) *Client {
	return &Client{cfg: cfg, taxa: taxa, lists: lists, env: env, meta: meta}
}

// ChecklistQuery configures the checklist retrieval workflow.
type ChecklistQuery struct {
	// Taxon is the target taxon name; lists are restricted to its
	// subtree (descendants plus covering ancestors).
	Taxon string

	// Criteria is the filter pipeline configuration.
	Criteria checklist.Criteria

	// RemoveOverlap drops redundantly overlapping polygons.
	RemoveOverlap bool

	// Thresholds for the de-overlap resolver; ignored unless
	// RemoveOverlap is set.
	AreaThMainland float64
	AreaThIsland   float64
	OverlapTh      float64

	// WithSpecies also downloads the species rows of every surviving
	// checklist.
	WithSpecies bool
}

// ChecklistResult is the outcome of the checklist workflow.
type ChecklistResult struct {
	// Records are the checklist-metadata rows that survived filtering.
	Records []checklist.Record

	// EntityIDs are the polygons covered by Records, sorted.
	EntityIDs []int

	// RemovedEntityIDs are the polygons dropped by the de-overlap
	// resolver, in removal order. Reported for transparency.
	RemovedEntityIDs []int

	// Species maps list ID to its species rows when WithSpecies is set.
	Species map[int][]Row
}

// Checklists resolves the taxon subtree, filters checklist metadata and
// optionally removes overlapping polygons and downloads species rows.
func (c *Client) Checklists(
	ctx context.Context,
	q ChecklistQuery,
) (*ChecklistResult, error) {
	start := time.Now()

	taxa, err := c.taxa.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}

	subtree, err := taxa.Subtree(q.Taxon)
	if err != nil {
		return nil, err
	}

	records, err := c.lists.Checklists(ctx)
	if err != nil {
		return nil, err
	}

	// Restrict to the taxon subtree before the filter pipeline; the
	// complete-coverage predicate operates on the taxon-restricted set.
	inSubtree := make([]checklist.Record, 0, len(records))
	for _, rec := range records {
		if _, found := slices.BinarySearch(subtree, rec.TaxonID); found {
			inSubtree = append(inSubtree, rec)
		}
	}

	filtered, err := checklist.Filter(inSubtree, q.Criteria, taxa, q.Taxon)
	if err != nil {
		return nil, err
	}

	res := &ChecklistResult{Records: filtered}
	res.EntityIDs = entityIDs(filtered)

	if q.RemoveOverlap && len(res.EntityIDs) > 1 {
		if err = c.deoverlap(ctx, q, res); err != nil {
			return nil, err
		}
	}

	if q.WithSpecies {
		if err = c.fetchSpecies(ctx, res); err != nil {
			return nil, err
		}
	}

	slog.Info("Checklist retrieval finished",
		"taxon", q.Taxon,
		"records", humanize.Comma(int64(len(res.Records))),
		"polygons", len(res.EntityIDs),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)

	return res, nil
}

func (c *Client) deoverlap(
	ctx context.Context,
	q ChecklistQuery,
	res *ChecklistResult,
) error {
	polygons, err := c.lists.Polygons(ctx, res.EntityIDs)
	if err != nil {
		return err
	}
	pairs, err := c.lists.Overlaps(ctx, res.EntityIDs)
	if err != nil {
		return err
	}

	retained, removed, err := spatial.RemoveOverlap(
		polygons, pairs, q.AreaThMainland, q.AreaThIsland, q.OverlapTh,
	)
	if err != nil {
		return err
	}

	keep := make(map[int]struct{}, len(retained))
	for _, id := range retained {
		keep[id] = struct{}{}
	}
	kept := res.Records[:0:0]
	for _, rec := range res.Records {
		if _, ok := keep[rec.EntityID]; ok {
			kept = append(kept, rec)
		}
	}

	res.Records = kept
	res.EntityIDs = retained
	res.RemovedEntityIDs = removed
	return nil
}

func (c *Client) fetchSpecies(ctx context.Context, res *ChecklistResult) error {
	listIDs := make([]int, 0, len(res.Records))
	seen := make(map[int]struct{})
	for _, rec := range res.Records {
		if _, ok := seen[rec.ListID]; !ok {
			seen[rec.ListID] = struct{}{}
			listIDs = append(listIDs, rec.ListID)
		}
	}

	species := make(map[int][]Row, len(listIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.JobsNumber, 1))
	for _, listID := range listIDs {
		g.Go(func() error {
			rows, err := c.lists.Species(ctx, listID)
			if err != nil {
				return err
			}
			mu.Lock()
			species[listID] = rows
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	res.Species = species
	return nil
}

// EnvQuery configures the environmental aggregation workflow.
type EnvQuery struct {
	// EntityIDs restricts the output to the given polygons; empty keeps
	// all available ones.
	EntityIDs []int

	// MiscVars names the miscellaneous variables to include.
	MiscVars []string

	// RasterSpecs requests summary statistics per raster layer, in the
	// output column order.
	RasterSpecs []envdata.RasterSpec
}

// Env merges the requested environmental tables into a single
// polygon-indexed table.
func (c *Client) Env(ctx context.Context, q EnvQuery) (envdata.Table, error) {
	return envdata.Aggregate(
		ctx, c.env, c.meta,
		q.EntityIDs, q.MiscVars, q.RasterSpecs,
		c.cfg.JobsNumber,
	)
}

func entityIDs(records []checklist.Record) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, rec := range records {
		if _, ok := seen[rec.EntityID]; !ok {
			seen[rec.EntityID] = struct{}{}
			ids = append(ids, rec.EntityID)
		}
	}
	slices.Sort(ids)
	return ids
}
