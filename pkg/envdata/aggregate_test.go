package envdata_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gnflora/pkg/envdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeta struct{}

func (fakeMeta) MiscVariables(ctx context.Context) ([]string, error) {
	return []string{"biome", "perimeter"}, nil
}

func (fakeMeta) RasterLayers(ctx context.Context) ([]string, error) {
	return []string{"temperature", "precipitation"}, nil
}

func (fakeMeta) SummaryStats(ctx context.Context) ([]string, error) {
	return []string{"min", "max", "mean", "median", "sd", "n"}, nil
}

type fakeSource struct {
	misc    envdata.Table
	rasters map[string]envdata.Table
	failOn  string
}

func (s *fakeSource) MiscTable(
	ctx context.Context, vars []string,
) (envdata.Table, error) {
	if s.failOn == "misc" {
		return envdata.Table{}, errors.New("service down")
	}
	return s.misc, nil
}

func (s *fakeSource) RasterTable(
	ctx context.Context, spec envdata.RasterSpec,
) (envdata.Table, error) {
	if s.failOn == spec.Layer {
		return envdata.Table{}, errors.New("service down")
	}
	return s.rasters[spec.Layer], nil
}

func testSource() *fakeSource {
	misc := envdata.NewTable("biome")
	misc.Set(1, "biome", "tundra")
	misc.Set(2, "biome", "taiga")

	temp := envdata.NewTable("mean_temperature")
	temp.Set(2, "mean_temperature", 3.5)
	temp.Set(3, "mean_temperature", 12.0)

	return &fakeSource{
		misc:    misc,
		rasters: map[string]envdata.Table{"temperature": temp},
	}
}

func TestAggregate_JoinAndColumnOrder(t *testing.T) {
	table, err := envdata.Aggregate(
		context.Background(), testSource(), fakeMeta{},
		nil,
		[]string{"biome"},
		[]envdata.RasterSpec{{Layer: "temperature", Stats: []string{"mean"}}},
		2,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"biome", "mean_temperature"}, table.Columns)
	assert.Equal(t, []int{1, 2, 3}, table.EntityIDs())

	_, ok := table.Get(1, "mean_temperature")
	assert.False(t, ok)
	v, ok := table.Get(3, "mean_temperature")
	require.True(t, ok)
	assert.Equal(t, 12.0, v)
}

func TestAggregate_RestrictToEntityIDs(t *testing.T) {
	table, err := envdata.Aggregate(
		context.Background(), testSource(), fakeMeta{},
		[]int{2},
		[]string{"biome"},
		[]envdata.RasterSpec{{Layer: "temperature", Stats: []string{"mean"}}},
		2,
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, table.EntityIDs())
}

func TestAggregate_UnknownNames(t *testing.T) {
	src := testSource()

	_, err := envdata.Aggregate(
		context.Background(), src, fakeMeta{},
		nil, []string{"altitude"}, nil, 2,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "altitude")

	_, err = envdata.Aggregate(
		context.Background(), src, fakeMeta{},
		nil, nil,
		[]envdata.RasterSpec{{Layer: "wind", Stats: []string{"mean"}}}, 2,
	)
	require.Error(t, err)

	_, err = envdata.Aggregate(
		context.Background(), src, fakeMeta{},
		nil, nil,
		[]envdata.RasterSpec{{Layer: "temperature", Stats: []string{"mode"}}}, 2,
	)
	require.Error(t, err)
}

// A transport failure in any one fetch aborts the whole call; a caller
// cannot distinguish "no data" from "failed to fetch" otherwise.
func TestAggregate_FetchFailureAborts(t *testing.T) {
	src := testSource()
	src.failOn = "temperature"

	_, err := envdata.Aggregate(
		context.Background(), src, fakeMeta{},
		nil,
		[]string{"biome"},
		[]envdata.RasterSpec{{Layer: "temperature", Stats: []string{"mean"}}},
		2,
	)
	require.Error(t, err)
}

func TestAggregate_PerLayerStats(t *testing.T) {
	src := testSource()
	precip := envdata.NewTable("min_precipitation", "max_precipitation")
	precip.Set(1, "min_precipitation", 200.0)
	precip.Set(1, "max_precipitation", 900.0)
	src.rasters["precipitation"] = precip

	table, err := envdata.Aggregate(
		context.Background(), src, fakeMeta{},
		nil, nil,
		[]envdata.RasterSpec{
			{Layer: "temperature", Stats: []string{"mean"}},
			{Layer: "precipitation", Stats: []string{"min", "max"}},
		},
		2,
	)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"mean_temperature", "min_precipitation", "max_precipitation"},
		table.Columns)
}
