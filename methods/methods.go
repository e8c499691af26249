// Package methods is the closed catalogue of named apportionment methods.
//
// Each Kind maps to one core.Method implementation:
//
//	Hamilton       → remainder.Hamilton          (largest remainder)
//	Jefferson      → divisor.Jefferson           (floor)
//	Webster        → divisor.Webster             (round half up)
//	HuntingtonHill → divisor.HuntingtonHill      (geometric mean)
//	Adams          → divisor.Adams               (ceil)
//
// Callers that need a method outside this set implement core.Method
// directly; neither this package nor core has to change.
package methods

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/remainder"
)

// ErrUnknownMethod is returned by Parse for names outside the catalogue.
var ErrUnknownMethod = errors.New("methods: unknown method")

// Kind enumerates the catalogue.
type Kind int

const (
	// Hamilton is the largest-remainder method.
	Hamilton Kind = iota
	// Jefferson is the floor divisor method (D'Hondt).
	Jefferson
	// Webster is the nearest divisor method (Sainte-Laguë).
	Webster
	// HuntingtonHill is the geometric-mean divisor method.
	HuntingtonHill
	// Adams is the ceiling divisor method.
	Adams
)

// Kinds lists the catalogue in display order.
var Kinds = []Kind{Hamilton, Jefferson, Webster, HuntingtonHill, Adams}

var kindNames = [...]string{
	Hamilton:       "hamilton",
	Jefferson:      "jefferson",
	Webster:        "webster",
	HuntingtonHill: "huntington-hill",
	Adams:          "adams",
}

var kindDescriptions = [...]string{
	Hamilton:       "largest remainder: floor of each quota, leftovers by largest fraction",
	Jefferson:      "divisor method, rounds down (D'Hondt)",
	Webster:        "divisor method, rounds half up (Sainte-Laguë)",
	HuntingtonHill: "divisor method, rounds at the geometric mean (U.S. House since 1941)",
	Adams:          "divisor method, rounds up",
}

// aliases accepted by Parse in addition to the canonical names.
var aliases = map[string]Kind{
	"vinton":         Hamilton,
	"largest":        Hamilton,
	"dhondt":         Jefferson,
	"d'hondt":        Jefferson,
	"sainte-lague":   Webster,
	"hill":           HuntingtonHill,
	"huntington":     HuntingtonHill,
	"huntingtonhill": HuntingtonHill,
}

// String returns the canonical name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Description is a one-line summary for listings.
func (k Kind) Description() string {
	if k >= 0 && int(k) < len(kindDescriptions) {
		return kindDescriptions[k]
	}

	return ""
}

// Aliases returns the alternative names Parse accepts for k, sorted.
func (k Kind) Aliases() []string {
	var out []string
	for name, a := range aliases {
		if a == k {
			out = append(out, name)
		}
	}
	slices.Sort(out)

	return out
}

// Parse resolves a canonical name or alias (case-insensitive).
func Parse(name string) (Kind, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if kindNames[k] == s {
			return k, nil
		}
	}
	if k, ok := aliases[s]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// New builds the method for k. divisor options are ignored by Hamilton.
func New(k Kind, opts ...divisor.Option) (core.Method, error) {
	switch k {
	case Hamilton:
		return remainder.Hamilton{}, nil
	case Jefferson:
		return divisor.Jefferson(opts...), nil
	case Webster:
		return divisor.Webster(opts...), nil
	case HuntingtonHill:
		return divisor.HuntingtonHill(opts...), nil
	case Adams:
		return divisor.Adams(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, k)
	}
}

// All returns one method per Kind, in Kinds order, sharing opts.
// It panics if Kinds ever lists a Kind that New does not know.
func All(opts ...divisor.Option) []core.Method {
	out := make([]core.Method, 0, len(Kinds))
	for _, k := range Kinds {
		m, err := New(k, opts...)
		if err != nil {
			panic(err)
		}
		out = append(out, m)
	}

	return out
}

// Classic returns the four methods of the classical comparison
// (Hamilton, Jefferson, Webster, Huntington-Hill).
func Classic(opts ...divisor.Option) []core.Method {
	return All(opts...)[:4]
}
