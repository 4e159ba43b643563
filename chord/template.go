package chord

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Structure is a set of semitone distances 1..11 above a base pitch.
// Bit d is set when distance d is present. Distance 0 is never stored.
type Structure uint16

const (
	minDistance = 1
	maxDistance = 11

	allDistances = Structure(((1 << (maxDistance + 1)) - 1) &^ 1)
)

func NewStructure(distances ...int) Structure {
	var s Structure
	for _, d := range distances {
		if d >= minDistance && d <= maxDistance {
			s |= 1 << uint(d)
		}
	}
	return s
}

// StructureOf measures every number against the lowest one, modulo the octave.
func StructureOf(numbers []int) Structure {
	if len(numbers) == 0 {
		return 0
	}
	base := numbers[0]
	for _, n := range numbers[1:] {
		if n < base {
			base = n
		}
	}
	var s Structure
	for _, n := range numbers {
		s |= 1 << uint((n-base)%12)
	}
	return s &^ 1
}

func (s Structure) Has(d int) bool {
	return d >= minDistance && d <= maxDistance && s&(1<<uint(d)) != 0
}

func (s Structure) Len() int {
	return bits.OnesCount16(uint16(s & allDistances))
}

func (s Structure) Distances() []int {
	res := make([]int, 0, s.Len())
	for d := minDistance; d <= maxDistance; d++ {
		if s.Has(d) {
			res = append(res, d)
		}
	}
	return res
}

func (s Structure) String() string {
	parts := make([]string, 0, s.Len())
	for _, d := range s.Distances() {
		parts = append(parts, strconv.Itoa(d))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Template names a chord quality by its intervals above the root.
type Template struct {
	Label     string
	Intervals Structure
}

// Order matters: on equal scores the earlier template wins.
var templates = mustTemplates(
	tmpl("5", 7),
	tmpl("", 4, 7),
	tmpl("m", 3, 7),
	tmpl("aug", 4, 8),
	tmpl("dim", 3, 6),
	tmpl("sus2", 2, 7),
	tmpl("sus4", 5, 7),
	tmpl("M7", 4, 7, 11),
	tmpl("m7", 3, 7, 10),
	tmpl("7", 4, 7, 10),
	tmpl("7♭5", 4, 6, 10),
	tmpl("7sus4", 5, 7, 10),
	tmpl("mM7", 3, 7, 11),
	tmpl("dim7", 3, 6, 11),
	tmpl("ø7", 3, 6, 10),
	tmpl("M9", 2, 4, 7, 11),
	tmpl("m9", 2, 3, 7, 10),
	tmpl("M11", 2, 4, 5, 7, 11),
	tmpl("m11", 2, 3, 5, 7, 10),
	tmpl("M13", 2, 4, 6, 7, 9, 11),
	tmpl("m13", 2, 3, 5, 7, 9, 10),
)

type templateDef struct {
	label     string
	distances []int
}

func tmpl(label string, distances ...int) templateDef {
	return templateDef{label: label, distances: distances}
}

func mustTemplates(defs ...templateDef) []Template {
	res, err := buildTemplates(defs)
	if err != nil {
		panic(err)
	}
	return res
}

// buildTemplates rejects anything Score could not handle: an empty template
// or one that uses all 11 distances would leave a zero denominator.
func buildTemplates(defs []templateDef) ([]Template, error) {
	seen := make(map[string]bool, len(defs))
	res := make([]Template, 0, len(defs))
	for _, def := range defs {
		if seen[def.label] {
			return nil, fmt.Errorf("chord template %q registered twice", def.label)
		}
		seen[def.label] = true

		var s Structure
		for _, d := range def.distances {
			if d < minDistance || d > maxDistance {
				return nil, fmt.Errorf("chord template %q: distance %d out of range", def.label, d)
			}
			s |= 1 << uint(d)
		}
		if n := s.Len(); n == 0 || n == maxDistance {
			return nil, fmt.Errorf("chord template %q: needs between 1 and %d distances, got %d", def.label, maxDistance-1, n)
		}
		res = append(res, Template{Label: def.label, Intervals: s})
	}
	return res, nil
}

// Templates returns a copy of the library in tie-break order.
func Templates() []Template {
	res := make([]Template, len(templates))
	copy(res, templates)
	return res
}
