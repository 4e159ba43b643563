package note

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type PitchClass uint8

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// NumClasses is the number of pitch classes in an octave.
const NumClasses = 12

var classNames = [NumClasses]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var ErrInvalidPitch = errors.New("invalid pitch")

func (k PitchClass) Valid() bool {
	return k < NumClasses
}

func (k PitchClass) String() string {
	if !k.Valid() {
		return fmt.Sprintf("PitchClass(%d)", uint8(k))
	}
	return classNames[k]
}

// Pitch is one sounding note.
type Pitch struct {
	Class  PitchClass
	Octave int
}

// ToNumber linearizes p so that C-1 is 0 and every semitone adds 1.
func ToNumber(p Pitch) int {
	return (p.Octave+1)*NumClasses + int(p.Class)
}

func FromNumber(n int) Pitch {
	// floor division, so numbers below C-1 land in negative octaves
	octave := n / NumClasses
	class := n % NumClasses
	if class < 0 {
		class += NumClasses
		octave--
	}
	return Pitch{Class: PitchClass(class), Octave: octave - 1}
}

func Transpose(p Pitch, n int) Pitch {
	return FromNumber(ToNumber(p) + n)
}

func (p Pitch) Number() int {
	return ToNumber(p)
}

func (p Pitch) String() string {
	return p.Class.String() + strconv.Itoa(p.Octave)
}

// FromMidi converts a MIDI key number. MIDI 60 is C4.
func FromMidi(key uint8) Pitch {
	return FromNumber(int(key))
}

// Midi returns the MIDI key number for p, or false if p is outside 0..127.
func (p Pitch) Midi() (uint8, bool) {
	n := ToNumber(p)
	if n < 0 || n > 127 {
		return 0, false
	}
	return uint8(n), true
}

// ParsePitchClass reads a class name such as "C", "f#", "Eb" or "B♭".
// Flats are folded onto the sharp spelling.
func ParsePitchClass(s string) (PitchClass, error) {
	letter, accidental, rest, err := parseSpelling(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	return FromNumber(letter + accidental).Class, nil
}

// ParsePitch reads the display form of a pitch, e.g. "C#4", "Eb3" or "B-1".
// Accidentals may cross the octave boundary: "Cb4" is B3.
func ParsePitch(s string) (Pitch, error) {
	letter, accidental, rest, err := parseSpelling(strings.TrimSpace(s))
	if err != nil {
		return Pitch{}, err
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: bad octave in %q", ErrInvalidPitch, s)
	}
	return FromNumber(ToNumber(Pitch{Class: PitchClass(letter), Octave: octave}) + accidental), nil
}

func parseSpelling(s string) (letter int, accidental int, rest string, err error) {
	if s == "" {
		return 0, 0, "", fmt.Errorf("%w: empty", ErrInvalidPitch)
	}

	switch s[0] {
	case 'C', 'c':
		letter = 0
	case 'D', 'd':
		letter = 2
	case 'E', 'e':
		letter = 4
	case 'F', 'f':
		letter = 5
	case 'G', 'g':
		letter = 7
	case 'A', 'a':
		letter = 9
	case 'B', 'b':
		letter = 11
	default:
		return 0, 0, "", fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}

	rest = s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		accidental = 1
		rest = rest[1:]
	case strings.HasPrefix(rest, "♯"):
		accidental = 1
		rest = rest[len("♯"):]
	case strings.HasPrefix(rest, "b"):
		accidental = -1
		rest = rest[1:]
	case strings.HasPrefix(rest, "♭"):
		accidental = -1
		rest = rest[len("♭"):]
	}
	return letter, accidental, rest, nil
}

// ParsePitches parses each name and shifts the result by transpose semitones.
func ParsePitches(names []string, transpose int) ([]Pitch, error) {
	res := make([]Pitch, 0, len(names))
	for _, name := range names {
		p, err := ParsePitch(name)
		if err != nil {
			return nil, err
		}
		res = append(res, Transpose(p, transpose))
	}
	return res, nil
}
