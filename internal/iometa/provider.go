// Package iometa implements the metadata and data providers of the
// checklist service on top of the transport collaborator. It converts raw
// tabular rows into the typed models consumed by the core.
package iometa

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnflora/pkg/checklist"
	"github.com/gnames/gnflora/pkg/flora"
	"github.com/gnames/gnflora/pkg/spatial"
	"github.com/gnames/gnflora/pkg/taxon"
)

// Query names of the versioned JSON API.
const (
	queryTaxonomy    = "taxonomy"
	queryChecklists  = "checklists"
	queryGeoEntities = "geoentities"
	queryOverlap     = "overlap"
	querySpecies     = "species"
	queryEnvMisc     = "env_misc"
	queryEnvMiscMeta = "env_misc_meta"
	queryEnvRaster   = "env_raster"
	queryRasterMeta  = "env_raster_meta"
	queryVersions    = "versions"
)

// Provider implements flora.TaxonomyProvider, flora.ChecklistProvider,
// flora.VersionResolver, envdata.Source and envdata.Meta.
type Provider struct {
	f flora.Fetcher
}

// New creates a Provider over the given transport.
func New(f flora.Fetcher) *Provider {
	return &Provider{f: f}
}

// Taxonomy fetches the full taxonomy table and indexes it.
func (p *Provider) Taxonomy(ctx context.Context) (*taxon.Taxonomy, error) {
	rows, err := p.f.Fetch(ctx, queryTaxonomy, url.Values{})
	if err != nil {
		return nil, err
	}

	nodes := make([]taxon.Node, 0, len(rows))
	for _, row := range rows {
		id, ok := toInt(row["taxon_ID"])
		if !ok {
			return nil, TaxonomyRowError(row)
		}
		left, lok := toInt(row["lft"])
		right, rok := toInt(row["rgt"])
		if !lok || !rok {
			return nil, TaxonomyRowError(row)
		}
		name, _ := toString(row["taxon_name"])
		author, _ := toString(row["taxon_author"])
		lvl, _ := toString(row["taxon_lvl"])

		nodes = append(nodes, taxon.Node{
			ID:     id,
			Name:   name,
			Author: author,
			Level:  taxon.Level(lvl),
			Left:   left,
			Right:  right,
		})
	}

	slog.Debug("Loaded taxonomy",
		"taxa", humanize.Comma(int64(len(nodes))))

	return taxon.NewTaxonomy(nodes), nil
}

// Checklists fetches the checklist-metadata table.
func (p *Provider) Checklists(ctx context.Context) ([]checklist.Record, error) {
	rows, err := p.f.Fetch(ctx, queryChecklists, url.Values{})
	if err != nil {
		return nil, err
	}

	records := make([]checklist.Record, 0, len(rows))
	for _, row := range rows {
		refID, ok := toInt(row["ref_ID"])
		if !ok {
			continue
		}
		listID, _ := toInt(row["list_ID"])
		entityID, _ := toInt(row["entity_ID"])
		taxonID, _ := toInt(row["taxon_ID"])
		subset, _ := toString(row["subset"])
		typ, _ := toString(row["type"])
		class, _ := toString(row["entity_class"])

		records = append(records, checklist.Record{
			RefID:            refID,
			ListID:           listID,
			EntityID:         entityID,
			TaxonID:          taxonID,
			Subset:           subset,
			Type:             typ,
			EntityClass:      class,
			NativeIndicated:  toBoolPtr(row["native_indicated"]),
			NaturalIndicated: toBoolPtr(row["natural_indicated"]),
			EndRef:           toBoolPtr(row["end_ref"]),
			EndList:          toBoolPtr(row["end_list"]),
			SuitGeo:          toBoolPtr(row["suit_geo"]),
			Restricted:       toBool(row["restricted"]),
		})
	}

	return records, nil
}

// Polygons resolves entity IDs to polygon metadata (area, class). The
// geometry itself stays with the geometry collaborator; this table only
// carries precomputed facts.
func (p *Provider) Polygons(
	ctx context.Context,
	entityIDs []int,
) ([]spatial.Polygon, error) {
	params := url.Values{}
	params.Set("entity_ID", joinIDs(entityIDs))

	rows, err := p.f.Fetch(ctx, queryGeoEntities, params)
	if err != nil {
		return nil, err
	}

	polygons := make([]spatial.Polygon, 0, len(rows))
	for _, row := range rows {
		id, ok := toInt(row["entity_ID"])
		if !ok {
			continue
		}
		area, _ := toFloat(row["area"])
		class, _ := toString(row["entity_class"])
		polygons = append(polygons, spatial.Polygon{
			EntityID: id,
			Area:     area,
			Class:    class,
		})
	}

	return polygons, nil
}

// Overlaps returns the pairwise overlap facts restricted to the given
// entity IDs. Both directions of a pair may appear; percentages are
// relative to each entity's own area.
func (p *Provider) Overlaps(
	ctx context.Context,
	entityIDs []int,
) ([]spatial.OverlapPair, error) {
	params := url.Values{}
	params.Set("entity_ID", joinIDs(entityIDs))

	rows, err := p.f.Fetch(ctx, queryOverlap, params)
	if err != nil {
		return nil, err
	}

	pairs := make([]spatial.OverlapPair, 0, len(rows))
	for _, row := range rows {
		a, aok := toInt(row["entity_ID_a"])
		b, bok := toInt(row["entity_ID_b"])
		pct, pok := toFloat(row["overlap_pct"])
		if !aok || !bok || !pok {
			continue
		}
		pairs = append(pairs, spatial.OverlapPair{
			EntityA: a,
			EntityB: b,
			Pct:     pct,
		})
	}

	return pairs, nil
}

// Species fetches the species rows of one checklist.
func (p *Provider) Species(
	ctx context.Context,
	listID int,
) ([]flora.Row, error) {
	params := url.Values{}
	params.Set("list_ID", strconv.Itoa(listID))
	return p.f.Fetch(ctx, querySpecies, params)
}

// Latest resolves the newest API version. This is the explicit resolution
// call; no other code path triggers a version lookup.
func (p *Provider) Latest(ctx context.Context) (string, error) {
	rows, err := p.f.Fetch(ctx, queryVersions, url.Values{})
	if err != nil {
		return "", err
	}

	var latest string
	for _, row := range rows {
		v, ok := toString(row["version"])
		if !ok {
			continue
		}
		if toBool(row["latest"]) {
			return v, nil
		}
		if v > latest {
			latest = v
		}
	}
	if latest == "" {
		return "", VersionError()
	}

	return latest, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
