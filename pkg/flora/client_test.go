package flora_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gnames/gnflora/pkg/checklist"
	"github.com/gnames/gnflora/pkg/config"
	"github.com/gnames/gnflora/pkg/envdata"
	"github.com/gnames/gnflora/pkg/flora"
	"github.com/gnames/gnflora/pkg/spatial"
	"github.com/gnames/gnflora/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	taxa    *taxon.Taxonomy
	records []checklist.Record

	polygons []spatial.Polygon
	overlaps []spatial.OverlapPair

	mu           sync.Mutex
	speciesCalls []int
}

func (p *fakeProvider) Taxonomy(ctx context.Context) (*taxon.Taxonomy, error) {
	return p.taxa, nil
}

func (p *fakeProvider) Checklists(ctx context.Context) ([]checklist.Record, error) {
	return p.records, nil
}

func (p *fakeProvider) Polygons(
	ctx context.Context, entityIDs []int,
) ([]spatial.Polygon, error) {
	return p.polygons, nil
}

func (p *fakeProvider) Overlaps(
	ctx context.Context, entityIDs []int,
) ([]spatial.OverlapPair, error) {
	return p.overlaps, nil
}

func (p *fakeProvider) Species(
	ctx context.Context, listID int,
) ([]flora.Row, error) {
	p.mu.Lock()
	p.speciesCalls = append(p.speciesCalls, listID)
	p.mu.Unlock()
	return []flora.Row{{"work_ID": listID}}, nil
}

func testProvider() *fakeProvider {
	taxa := taxon.NewTaxonomy([]taxon.Node{
		{ID: 1, Name: "Tracheophyta", Left: 1, Right: 100},
		{ID: 2, Name: "Angiospermae", Left: 10, Right: 50},
		{ID: 3, Name: "Orchidaceae", Left: 20, Right: 22},
		{ID: 4, Name: "Bryophyta", Left: 60, Right: 70},
	})
	return &fakeProvider{
		taxa: taxa,
		records: []checklist.Record{
			{RefID: 1, ListID: 11, EntityID: 100, TaxonID: 2},
			{RefID: 2, ListID: 12, EntityID: 101, TaxonID: 3},
			// Outside the Angiospermae subtree; must be dropped before
			// the filter pipeline runs.
			{RefID: 3, ListID: 13, EntityID: 102, TaxonID: 4},
		},
	}
}

func testClient(p *fakeProvider) *flora.Client {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(2)})
	return flora.New(cfg, p, p, nil, nil)
}

func TestChecklists_SubtreeRestriction(t *testing.T) {
	p := testProvider()
	client := testClient(p)

	res, err := client.Checklists(context.Background(), flora.ChecklistQuery{
		Taxon: "Angiospermae",
	})
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, []int{100, 101}, res.EntityIDs)
}

func TestChecklists_UnknownTaxon(t *testing.T) {
	client := testClient(testProvider())

	_, err := client.Checklists(context.Background(), flora.ChecklistQuery{
		Taxon: "Fungi",
	})
	require.Error(t, err)
}

func TestChecklists_RemoveOverlap(t *testing.T) {
	p := testProvider()
	p.polygons = []spatial.Polygon{
		{EntityID: 100, Area: 500, Class: spatial.ClassMainland},
		{EntityID: 101, Area: 50, Class: spatial.ClassMainland},
	}
	p.overlaps = []spatial.OverlapPair{
		{EntityA: 101, EntityB: 100, Pct: 0.9},
	}
	client := testClient(p)

	res, err := client.Checklists(context.Background(), flora.ChecklistQuery{
		Taxon:          "Angiospermae",
		RemoveOverlap:  true,
		AreaThMainland: 100,
		OverlapTh:      0.1,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{100}, res.EntityIDs)
	assert.Equal(t, []int{101}, res.RemovedEntityIDs)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 100, res.Records[0].EntityID)
}

func TestChecklists_WithSpecies(t *testing.T) {
	p := testProvider()
	client := testClient(p)

	res, err := client.Checklists(context.Background(), flora.ChecklistQuery{
		Taxon:       "Angiospermae",
		WithSpecies: true,
	})
	require.NoError(t, err)

	require.Len(t, res.Species, 2)
	assert.Contains(t, res.Species, 11)
	assert.Contains(t, res.Species, 12)
	assert.ElementsMatch(t, []int{11, 12}, p.speciesCalls)
}

type fakeEnv struct{}

func (fakeEnv) MiscTable(ctx context.Context, vars []string) (envdata.Table, error) {
	t := envdata.NewTable("biome")
	t.Set(100, "biome", "tundra")
	return t, nil
}

func (fakeEnv) RasterTable(
	ctx context.Context, spec envdata.RasterSpec,
) (envdata.Table, error) {
	return envdata.NewTable(), nil
}

func (fakeEnv) MiscVariables(ctx context.Context) ([]string, error) {
	return []string{"biome"}, nil
}

func (fakeEnv) RasterLayers(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (fakeEnv) SummaryStats(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestEnv(t *testing.T) {
	cfg := config.New()
	client := flora.New(cfg, nil, nil, fakeEnv{}, fakeEnv{})

	table, err := client.Env(context.Background(), flora.EnvQuery{
		MiscVars: []string{"biome"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{100}, table.EntityIDs())
}
