package census_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/census"
	"github.com/katalvlaran/apportion/core"
)

func TestUS2020(t *testing.T) {
	r := census.US2020()
	require.Len(t, r.Entities, 50)
	assert.Equal(t, census.HouseSize, r.Seats)
	assert.Equal(t, core.Entity{Name: "Alabama", Weight: 5024279}, r.Entities[0])
	assert.Equal(t, core.Entity{Name: "Wyoming", Weight: 576851}, r.Entities[49])

	req, err := r.Request(0)
	require.NoError(t, err)
	assert.Equal(t, 435, req.Seats)
	assert.Equal(t, 330719739.0, req.TotalWeight())
}

func TestReadCSV(t *testing.T) {
	in := strings.Join([]string{
		"state,population",
		"# comment lines are ignored",
		"Alpha, 1200",
		`Beta,"3,400"`,
		"Gamma,0",
	}, "\n")
	r, err := census.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []core.Entity{
		{Name: "Alpha", Weight: 1200},
		{Name: "Beta", Weight: 3400},
		{Name: "Gamma", Weight: 0},
	}, r.Entities)
	assert.Zero(t, r.Seats)

	// Headerless input keeps the first row.
	r, err = census.ReadCSV(strings.NewReader("A,1\nB,2\n"))
	require.NoError(t, err)
	assert.Len(t, r.Entities, 2)
}

func TestReadCSV_Malformed(t *testing.T) {
	for name, in := range map[string]string{
		"single column": "A\n",
		"bad weight":    "name,w\nA,many\n",
		"empty name":    "name,w\n ,5\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := census.ReadCSV(strings.NewReader(in))
			assert.ErrorIs(t, err, census.ErrMalformedRow)
		})
	}
}

func TestReadYAML(t *testing.T) {
	in := `
seats: 7
method: webster
entities:
  - name: North
    population: 900
  - name: South
    weight: 1.5e3
`
	r, err := census.ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 7, r.Seats)
	assert.Equal(t, "webster", r.Method)
	assert.Equal(t, []core.Entity{{Name: "North", Weight: 900}, {Name: "South", Weight: 1500}}, r.Entities)

	req, err := r.Request(10)
	require.NoError(t, err)
	assert.Equal(t, 10, req.Seats, "explicit seats override the file")
}

func TestReadYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"both weights": "entities:\n  - {name: A, weight: 1, population: 2}\n",
		"no weight":    "entities:\n  - {name: A}\n",
		"no name":      "entities:\n  - {weight: 3}\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := census.ReadYAML(strings.NewReader(in))
			assert.ErrorIs(t, err, census.ErrMalformedRow)
		})
	}

	_, err := census.ReadYAML(strings.NewReader("seats: 3\ncolour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestRoster_RequestValidates(t *testing.T) {
	r := census.Roster{Entities: []core.Entity{{Name: "A", Weight: 1}}}
	_, err := r.Request(0)
	assert.ErrorIs(t, err, core.ErrNonPositiveSeats)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,pop\nA,10\nB,20\n"), 0o600))
	yamlPath := filepath.Join(dir, "req.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("seats: 3\nentities:\n  - {name: A, weight: 1}\n"), 0o600))

	r, err := census.Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, r.Entities, 2)

	r, err = census.Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Seats)

	_, err = census.Load(filepath.Join(dir, "data.json"))
	assert.ErrorIs(t, err, census.ErrUnknownFormat)

	_, err = census.Load(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
