package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/report"
)

var sample = []core.Entity{
	{Name: "Small", Weight: 500_000},
	{Name: "Big", Weight: 1_500_000},
	{Name: "Empty", Weight: 0},
}

func lines(s string) [][]string {
	var out [][]string
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		out = append(out, strings.Fields(l))
	}

	return out
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, "webster", sample, core.SeatVector{1, 2, 0}))

	got := lines(buf.String())
	require.Len(t, got, 6)
	assert.Equal(t, []string{"webster"}, got[0])
	assert.Equal(t, []string{"Entity", "Population", "Seats", "Per", "million", "Persons/seat"}, got[1])
	assert.Equal(t, []string{"Big", "1,500,000", "2", "1.333", "750,000"}, got[2])
	assert.Equal(t, []string{"Small", "500,000", "1", "2", "500,000"}, got[3])
	assert.Equal(t, []string{"Empty", "0", "0", "n/a", "n/a"}, got[4])
	assert.Equal(t, []string{"Total", "2,000,000", "3", "1.5", "666,667"}, got[5])
}

func TestWriteTable_LengthMismatch(t *testing.T) {
	err := report.WriteTable(&bytes.Buffer{}, "", sample, core.SeatVector{1})
	assert.ErrorIs(t, err, report.ErrLengthMismatch)
}

func TestWriteComparison(t *testing.T) {
	results := []report.Result{
		{Method: "hamilton", Seats: core.SeatVector{1, 2, 0}},
		{Method: "jefferson", Seats: core.SeatVector{0, 3, 0}},
		{Method: "adams", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteComparison(&buf, sample, results))
	got := lines(buf.String())
	require.Len(t, got, 5)
	assert.Equal(t, []string{"Entity", "Population", "hamilton", "jefferson", "adams"}, got[0])
	assert.Equal(t, []string{"Big", "1,500,000", "2", "3", "n/a"}, got[1])
	assert.Equal(t, []string{"Small", "500,000", "1", "0", "n/a"}, got[2])
	assert.Equal(t, []string{"Empty", "0", "0", "0", "n/a"}, got[3])
	assert.Equal(t, []string{"adams:", "boom"}, got[4])

	assert.Equal(t, []int{0, 1}, report.Disagreements(results))

	buf.Reset()
	require.NoError(t, report.WriteDisagreements(&buf, sample, results))
	got = lines(buf.String())
	require.Len(t, got, 4)
	assert.Equal(t, "Big", got[1][0])
	assert.Equal(t, "Small", got[2][0])
}

func TestWriteDisagreements_AllAgree(t *testing.T) {
	results := []report.Result{
		{Method: "a", Seats: core.SeatVector{1, 2, 0}},
		{Method: "b", Seats: core.SeatVector{1, 2, 0}},
	}
	assert.Empty(t, report.Disagreements(results))

	var buf bytes.Buffer
	require.NoError(t, report.WriteDisagreements(&buf, sample, results))
	assert.Equal(t, "all methods agree\n", buf.String())
}

func TestWriteComparison_LengthMismatch(t *testing.T) {
	err := report.WriteComparison(&bytes.Buffer{}, sample, []report.Result{{Method: "x", Seats: core.SeatVector{3}}})
	assert.ErrorIs(t, err, report.ErrLengthMismatch)
}
