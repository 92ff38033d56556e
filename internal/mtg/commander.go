// Package mtg holds pure Magic: The Gathering rules helpers. Nothing in this
// package touches storage or transport.
package mtg

import (
	"fmt"
	"strings"
)

// basicLands are exempt from the Commander singleton rule and may appear in
// any quantity. Matching is by exact card name, case-insensitive; a printed
// flag from the card database would be more robust but names are stable.
var basicLands = map[string]struct{}{
	"plains":                {},
	"island":                {},
	"swamp":                 {},
	"mountain":              {},
	"forest":                {},
	"wastes":                {},
	"snow-covered plains":   {},
	"snow-covered island":   {},
	"snow-covered swamp":    {},
	"snow-covered mountain": {},
	"snow-covered forest":   {},
	"snow-covered wastes":   {},
}

// IsBasicLand reports whether the card name is a basic land.
func IsBasicLand(name string) bool {
	_, ok := basicLands[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Addition is a proposed (card name, quantity) pair for a deck.
type Addition struct {
	Name     string
	Quantity int
}

// ValidateCommanderAdditions checks proposed additions against a Commander
// deck's current card counts (keyed by lowercased name). Additions within the
// batch count against each other, so listing the same non-basic twice is a
// violation even in an empty deck. It returns one violation message per
// offending card and never mutates current. Callers must re-run it on every
// add, not only at deck creation.
func ValidateCommanderAdditions(current map[string]int, additions []Addition) []string {
	counts := make(map[string]int, len(current))
	for k, v := range current {
		counts[strings.ToLower(k)] = v
	}

	var violations []string
	for _, add := range additions {
		name := strings.TrimSpace(add.Name)
		if name == "" || add.Quantity <= 0 {
			continue
		}
		if IsBasicLand(name) {
			continue
		}

		key := strings.ToLower(name)
		have := counts[key]
		switch {
		case have >= 1:
			violations = append(violations,
				fmt.Sprintf("%q already in deck (max 1 copy allowed in Commander)", name))
		case have+add.Quantity > 1:
			violations = append(violations,
				fmt.Sprintf("cannot add %d copies of %q (max 1 copy allowed in Commander)", add.Quantity, name))
		}
		counts[key] += add.Quantity
	}

	return violations
}

// TrimToSingleton caps every non-basic-land addition at one copy. It is used
// when importing preconstructed lists into a Commander deck, where rejecting
// the whole import would be unhelpful.
func TrimToSingleton(additions []Addition) []Addition {
	out := make([]Addition, 0, len(additions))
	seen := make(map[string]struct{}, len(additions))

	for _, add := range additions {
		name := strings.TrimSpace(add.Name)
		if name == "" || add.Quantity <= 0 {
			continue
		}
		if IsBasicLand(name) {
			out = append(out, Addition{Name: name, Quantity: add.Quantity})
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Addition{Name: name, Quantity: 1})
	}

	return out
}
