package chord

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/chordguess/note"
	"golang.org/x/exp/slices"
)

// NotApplicable is what Detect returns for an empty pitch set.
const NotApplicable = "N/A"

// Score rates an observed structure against a template. Each present
// distance inside the template earns 1/|T|, each present distance outside it
// costs 1/(11-|T|). Absent distances are ignored.
func Score(s, t Structure) float64 {
	inside := t.Len()
	outside := maxDistance - inside
	if inside == 0 || outside == 0 {
		return 0
	}
	hits := (s & t).Len()
	extras := (s &^ t).Len()
	return float64(hits)/float64(inside) - float64(extras)/float64(outside)
}

// Match is the best template for a pitch set read with its lowest pitch as root.
type Match struct {
	Root  note.PitchClass
	Label string
	Score float64
}

func numbers(pitches []note.Pitch) []int {
	res := make([]int, len(pitches))
	for i, p := range pitches {
		res[i] = note.ToNumber(p)
	}
	return res
}

func lowest(nums []int) int {
	base := nums[0]
	for _, n := range nums[1:] {
		if n < base {
			base = n
		}
	}
	return base
}

// DetectOnce scores pitches against every template. It reports false for an
// empty set.
func DetectOnce(pitches []note.Pitch) (Match, bool) {
	if len(pitches) == 0 {
		return Match{}, false
	}
	nums := numbers(pitches)
	structure := StructureOf(nums)

	best := Match{Root: note.FromNumber(lowest(nums)).Class}
	for i, t := range templates {
		score := Score(structure, t.Intervals)
		if i == 0 || score > best.Score {
			best.Label = t.Label
			best.Score = score
		}
	}
	return best, true
}

// Guess is a recognized chord. Bass differs from Root only when Inverted.
type Guess struct {
	Root     note.PitchClass
	Label    string
	Bass     note.PitchClass
	Inverted bool
	Score    float64
}

func (g Guess) Name() string {
	if g.Inverted {
		return g.Root.String() + g.Label + "/" + g.Bass.String()
	}
	return g.Root.String() + g.Label
}

func (g Guess) String() string {
	return fmt.Sprintf("%s (%d%%)", g.Name(), Percent(g.Score))
}

// Percent renders a score as ceil(score*100). It is not clamped.
func Percent(score float64) int {
	return int(math.Ceil(score * 100))
}

// Recognize runs a full pass and a second pass without the bass pitch class.
// If the second pass scores strictly higher the chord is read as an inversion
// over the bass.
func Recognize(pitches []note.Pitch) (Guess, bool) {
	first, ok := DetectOnce(pitches)
	if !ok {
		return Guess{}, false
	}
	bass := first.Root

	var upper []note.Pitch
	for _, p := range pitches {
		if p.Class != bass {
			upper = append(upper, p)
		}
	}

	if second, ok := DetectOnce(upper); ok && second.Score > first.Score {
		return Guess{
			Root:     second.Root,
			Label:    second.Label,
			Bass:     bass,
			Inverted: true,
			Score:    second.Score,
		}, true
	}
	return Guess{Root: bass, Label: first.Label, Bass: bass, Score: first.Score}, true
}

// Detect names the chord formed by pitches, e.g. "C (100%)" or
// "Gsus4/E (50%)".
func Detect(pitches []note.Pitch) string {
	g, ok := Recognize(pitches)
	if !ok {
		return NotApplicable
	}
	return g.String()
}

// Key builds a canonical key for a set of pitch numbers, e.g. "60-64-67".
func Key(nums []int) string {
	sorted := append([]int(nil), nums...)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
