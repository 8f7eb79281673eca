package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"predstats/internal/config"
)

const fixtureCSV = `date,team,season,opponent,points_for,points_against,forecast
2024-09-08,PHI,2024,GB,34,29,0.64
2024-09-16,PHI,2024,ATL,21,22,0.58
2024-09-22,PHI,2024,NO,15,12,0.55
2023-09-10,PHI,2023,NE,25,20,0.70
2024-09-08,DAL,2024,CLE,33,17,0.41
`

// fakeFetcher serves fixture bytes keyed by URL.
type fakeFetcher struct {
	bodies map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	body, ok := f.bodies[url]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", url)
	}
	return body, nil
}

func newTestBuilder(exclude ...string) *Builder {
	fetcher := &fakeFetcher{bodies: map[string][]byte{
		"https://example.com/matches.csv": []byte(fixtureCSV),
	}}
	return NewBuilder(fetcher, config.ReportConfig{ExcludeColumns: exclude}, nil)
}

func TestBuilderBuild(t *testing.T) {
	b := newTestBuilder("season")

	summary, err := b.Build(context.Background(), Request{
		Source: "https://example.com/matches.csv",
		Team:   "PHI",
		Season: 2024,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, 3, summary.Rows)
	// categorical columns and the excluded season are gone; margin is derived
	assert.Equal(t, []string{"points_for", "points_against", "forecast", "margin"}, summary.Columns)

	// all three reducers by default, in presentation order
	require.Len(t, summary.Results, 3)
	assert.Equal(t, "mean", summary.Results[0].Reducer)
	assert.Equal(t, "median", summary.Results[1].Reducer)
	assert.Equal(t, "stddev", summary.Results[2].Reducer)

	mean := summary.Results[0].Result
	meanMargin, ok := mean.Value("margin")
	require.True(t, ok)
	// margins: 5, -1, 3
	assert.InDelta(t, 7.0/3.0, meanMargin, 1e-9)

	meanPoints, ok := mean.Value("points_for")
	require.True(t, ok)
	assert.InDelta(t, (34.0+21.0+15.0)/3.0, meanPoints, 1e-9)
}

func TestBuilderRequestedReducers(t *testing.T) {
	b := newTestBuilder("season")

	summary, err := b.Build(context.Background(), Request{
		Source:   "https://example.com/matches.csv",
		Team:     "PHI",
		Season:   2024,
		Reducers: []string{"median"},
	})
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, "median", summary.Results[0].Reducer)
}

func TestBuilderUnknownReducer(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Build(context.Background(), Request{
		Source:   "https://example.com/matches.csv",
		Reducers: []string{"variance"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reducer")
}

func TestBuilderNoMatchingRows(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Build(context.Background(), Request{
		Source: "https://example.com/matches.csv",
		Team:   "NYG",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatchingRows)
	assert.Contains(t, err.Error(), "no rows match")
}

func TestBuilderFetchFailure(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Build(context.Background(), Request{Source: "https://example.com/missing.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "fetch source")
}

func TestBuilderNoFilters(t *testing.T) {
	b := newTestBuilder("season")

	summary, err := b.Build(context.Background(), Request{
		Source: "https://example.com/matches.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Rows)
}
