// Package census builds apportionment requests from outside data: CSV
// rosters (name,population), YAML request files, and the embedded 2020 U.S.
// census resident populations.
//
// It sits outside the allocation core: core and the method packages never
// import it.
package census

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/apportion/core"
)

// HouseSize is the number of seats in the U.S. House of Representatives.
const HouseSize = 435

// Sentinel errors for roster loading.
var (
	// ErrMalformedRow is returned for a CSV row without a name and a numeric weight.
	ErrMalformedRow = errors.New("census: malformed row")

	// ErrUnknownFormat is returned by Load for unsupported file extensions.
	ErrUnknownFormat = errors.New("census: unknown file format")
)

//go:embed data/us2020.csv
var us2020CSV []byte

// Roster is a loaded list of entities plus the optional settings a request
// file may carry.
type Roster struct {
	// Seats is the seat total from the file; 0 if the source does not say.
	Seats int

	// Method is the method name from the file; empty if unspecified.
	Method string

	// Entities in file order.
	Entities []core.Entity
}

// Request turns the roster into a validated core.Request. A positive seats
// argument overrides the roster's own Seats.
func (r Roster) Request(seats int) (core.Request, error) {
	if seats <= 0 {
		seats = r.Seats
	}

	return core.NewRequest(seats, r.Entities...)
}

// US2020 returns the 50 states with their 2020 census resident populations
// and HouseSize seats.
func US2020() Roster {
	r, err := ReadCSV(bytes.NewReader(us2020CSV))
	if err != nil {
		panic("census: embedded dataset is corrupt: " + err.Error())
	}
	r.Seats = HouseSize

	return r
}

// ReadCSV reads "name,weight" rows. A first row whose weight column is not
// numeric is treated as a header and skipped. Weights may carry thousands
// separators ("5,024,279" when quoted).
func ReadCSV(r io.Reader) (Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		out  Roster
		line int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Roster{}, fmt.Errorf("census: csv: %w", err)
		}
		line++
		if len(rec) < 2 {
			return Roster{}, fmt.Errorf("%w: line %d: want name,weight", ErrMalformedRow, line)
		}
		name := strings.TrimSpace(rec[0])
		w, err := parseWeight(rec[1])
		if err != nil {
			if line == 1 {
				continue // header
			}

			return Roster{}, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		if name == "" {
			return Roster{}, fmt.Errorf("%w: line %d: empty name", ErrMalformedRow, line)
		}
		out.Entities = append(out.Entities, core.Entity{Name: name, Weight: w})
	}

	return out, nil
}

// yamlFile is the on-disk layout of a request file:
//
//	seats: 435
//	method: huntington-hill
//	entities:
//	  - name: Alabama
//	    population: 5024279
type yamlFile struct {
	Seats    int          `yaml:"seats"`
	Method   string       `yaml:"method"`
	Entities []yamlEntity `yaml:"entities"`
}

type yamlEntity struct {
	Name       string   `yaml:"name"`
	Weight     *float64 `yaml:"weight"`
	Population *float64 `yaml:"population"`
}

// ReadYAML decodes a request file. Each entity needs a name and either a
// weight or a population.
func ReadYAML(r io.Reader) (Roster, error) {
	var f yamlFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Roster{}, fmt.Errorf("census: yaml: %w", err)
	}

	out := Roster{Seats: f.Seats, Method: f.Method, Entities: make([]core.Entity, 0, len(f.Entities))}
	for i, e := range f.Entities {
		var w *float64
		switch {
		case e.Weight != nil && e.Population != nil:
			return Roster{}, fmt.Errorf("%w: entity %d (%q): both weight and population set", ErrMalformedRow, i, e.Name)
		case e.Weight != nil:
			w = e.Weight
		case e.Population != nil:
			w = e.Population
		default:
			return Roster{}, fmt.Errorf("%w: entity %d (%q): missing weight", ErrMalformedRow, i, e.Name)
		}
		if strings.TrimSpace(e.Name) == "" {
			return Roster{}, fmt.Errorf("%w: entity %d: empty name", ErrMalformedRow, i)
		}
		out.Entities = append(out.Entities, core.Entity{Name: e.Name, Weight: *w})
	}

	return out, nil
}

// Load reads a roster from path, choosing the decoder by extension
// (.csv, .yaml, .yml).
func Load(path string) (Roster, error) {
	var read func(io.Reader) (Roster, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		read = ReadCSV
	case ".yaml", ".yml":
		read = ReadYAML
	default:
		return Roster{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Roster{}, err
	}
	defer f.Close()

	r, err := read(f)
	if err != nil {
		return Roster{}, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

func parseWeight(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.ReplaceAll(s, "_", "")

	return strconv.ParseFloat(s, 64)
}
