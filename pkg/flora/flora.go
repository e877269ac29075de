// Package flora defines the contracts between the pure core and its
// collaborators, plus the high-level client facade that wires the
// retrieval workflows together.
//
// The core never talks to the network directly: transport, metadata and
// geometry are interfaces implemented under internal/io*.
package flora

import (
	"context"
	"net/url"

	"github.com/gnames/gnflora/pkg/checklist"
	"github.com/gnames/gnflora/pkg/spatial"
	"github.com/gnames/gnflora/pkg/taxon"
)

// Row is one record of a tabular API response.
type Row map[string]any

// Fetcher is the transport collaborator. It hides pagination: Fetch
// returns all rows of the named query, however many pages the service
// splits them into. Network and HTTP failures surface as transport errors
// and are not retried here; retry policy belongs to the implementation.
type Fetcher interface {
	Fetch(ctx context.Context, query string, params url.Values) ([]Row, error)
}

// TaxonomyProvider returns the taxonomy table for the configured API
// version. The table is read-only for the duration of a query.
type TaxonomyProvider interface {
	Taxonomy(ctx context.Context) (*taxon.Taxonomy, error)
}

// ChecklistProvider returns checklist metadata and the spatial facts
// needed by the de-overlap resolver.
type ChecklistProvider interface {
	// Checklists returns one record per (reference, list, polygon,
	// taxon) combination.
	Checklists(ctx context.Context) ([]checklist.Record, error)

	// Polygons resolves entity IDs to polygons with precomputed area
	// and class.
	Polygons(ctx context.Context, entityIDs []int) ([]spatial.Polygon, error)

	// Overlaps returns pairwise overlap facts restricted to the given
	// entity IDs.
	Overlaps(ctx context.Context, entityIDs []int) ([]spatial.OverlapPair, error)

	// Species returns the species rows of one checklist.
	Species(ctx context.Context, listID int) ([]Row, error)
}

// VersionResolver resolves the "latest" API version. Resolution is an
// explicit, named call: the core never triggers a hidden version lookup
// through a default parameter.
type VersionResolver interface {
	Latest(ctx context.Context) (string, error)
}
