// Package report renders apportionment results as aligned text tables.
//
// WriteTable prints one method's seat vector with population, seats and
// seats per million persons. WriteComparison lines several methods up side
// by side, one column per method. Numbers use thousands separators.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/apportion/core"
)

// ErrLengthMismatch is returned when a seat vector does not line up with the entities.
var ErrLengthMismatch = errors.New("report: seat vector length does not match entities")

// Result is one method's outcome for a comparison table. A non-nil Err marks
// the column as failed and its cells print as "n/a".
type Result struct {
	Method string
	Seats  core.SeatVector
	Err    error
}

const na = "n/a"

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// WriteTable writes the allocation of a single method. Rows are ordered by
// seats (descending), then by input order. A totals row closes the table.
func WriteTable(w io.Writer, title string, entities []core.Entity, seats core.SeatVector) error {
	if len(seats) != len(entities) {
		return fmt.Errorf("%w: %d seats, %d entities", ErrLengthMismatch, len(seats), len(entities))
	}

	order := make([]int, len(entities))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return seats[b] - seats[a] })

	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
			return err
		}
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Entity\tPopulation\tSeats\tPer million\tPersons/seat\t")

	var total float64
	for _, i := range order {
		e := entities[i]
		total += e.Weight
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t\n",
			e.Name, population(e.Weight), seats[i], perMillion(seats[i], e.Weight), personsPerSeat(e.Weight, seats[i]))
	}
	k := seats.Sum()
	fmt.Fprintf(tw, "Total\t%s\t%d\t%s\t%s\t\n", population(total), k, perMillion(k, total), personsPerSeat(total, k))

	return tw.Flush()
}

// WriteComparison writes one row per entity, ordered by population
// (descending, then input order), and one seat column per result.
func WriteComparison(w io.Writer, entities []core.Entity, results []Result) error {
	return writeComparison(w, entities, results, nil)
}

// WriteDisagreements is WriteComparison restricted to the rows where the
// successful methods do not all agree.
func WriteDisagreements(w io.Writer, entities []core.Entity, results []Result) error {
	rows := Disagreements(results)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "all methods agree")

		return err
	}

	return writeComparison(w, entities, results, rows)
}

// Disagreements returns the entity indices, in input order, where at least
// two successful results assign different seat counts.
func Disagreements(results []Result) []int {
	var ok []core.SeatVector
	for _, r := range results {
		if r.Err == nil {
			ok = append(ok, r.Seats)
		}
	}
	if len(ok) < 2 {
		return nil
	}

	var out []int
	for i := range ok[0] {
		for _, s := range ok[1:] {
			if i < len(s) && s[i] != ok[0][i] {
				out = append(out, i)

				break
			}
		}
	}

	return out
}

func writeComparison(w io.Writer, entities []core.Entity, results []Result, rows []int) error {
	for _, r := range results {
		if r.Err == nil && len(r.Seats) != len(entities) {
			return fmt.Errorf("%w: %s has %d seats, %d entities", ErrLengthMismatch, r.Method, len(r.Seats), len(entities))
		}
	}

	if rows == nil {
		rows = make([]int, len(entities))
		for i := range rows {
			rows[i] = i
		}
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		switch {
		case entities[a].Weight > entities[b].Weight:
			return -1
		case entities[a].Weight < entities[b].Weight:
			return 1
		}

		return 0
	})

	tw := newTabWriter(w)
	fmt.Fprint(tw, "Entity\tPopulation\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t", r.Method)
	}
	fmt.Fprintln(tw)

	for _, i := range rows {
		fmt.Fprintf(tw, "%s\t%s\t", entities[i].Name, population(entities[i].Weight))
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(tw, "%s\t", na)

				continue
			}
			fmt.Fprintf(tw, "%d\t", r.Seats[i])
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %v\n", r.Method, r.Err); err != nil {
				return err
			}
		}
	}

	return nil
}

func population(w float64) string {
	if w == float64(int64(w)) {
		return humanize.Comma(int64(w))
	}

	return humanize.CommafWithDigits(w, 2)
}

func perMillion(seats int, w float64) string {
	if w == 0 {
		return na
	}

	return humanize.CommafWithDigits(float64(seats)/w*1e6, 3)
}

func personsPerSeat(w float64, seats int) string {
	if seats == 0 {
		return na
	}

	return humanize.Comma(int64(w/float64(seats) + 0.5))
}
