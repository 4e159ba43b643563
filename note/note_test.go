package note

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumberAnchors(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, ToNumber(Pitch{Class: C, Octave: -1}))
	assert.Equal(60, ToNumber(Pitch{Class: C, Octave: 4}))
	assert.Equal(69, ToNumber(Pitch{Class: A, Octave: 4}))
	assert.Equal(-1, ToNumber(Pitch{Class: B, Octave: -2}))
	assert.Equal(-12, ToNumber(Pitch{Class: C, Octave: -2}))
}

func TestFromNumberUsesFloorDivision(t *testing.T) {
	cases := []struct {
		n    int
		want Pitch
	}{
		{0, Pitch{Class: C, Octave: -1}},
		{11, Pitch{Class: B, Octave: -1}},
		{12, Pitch{Class: C, Octave: 0}},
		{61, Pitch{Class: CSharp, Octave: 4}},
		{-1, Pitch{Class: B, Octave: -2}},
		{-12, Pitch{Class: C, Octave: -2}},
		{-13, Pitch{Class: B, Octave: -3}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("number %d", c.n), func(t *testing.T) {
			assert.Equal(t, c.want, FromNumber(c.n))
		})
	}
}

func TestNumberRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for n := -300; n <= 300; n++ {
		assert.Equal(n, ToNumber(FromNumber(n)))
	}
	for octave := -20; octave <= 20; octave++ {
		for class := C; class <= B; class++ {
			p := Pitch{Class: class, Octave: octave}
			assert.Equal(p, FromNumber(ToNumber(p)))
		}
	}
}

func TestTransposeComposes(t *testing.T) {
	assert := assert.New(t)
	p := Pitch{Class: E, Octave: 2}
	for n := -40; n <= 40; n += 7 {
		for m := -40; m <= 40; m += 5 {
			assert.Equal(Transpose(p, n+m), Transpose(Transpose(p, n), m))
		}
	}
	assert.Equal(Pitch{Class: G, Octave: 4}, Transpose(Pitch{Class: C, Octave: 4}, 7))
	assert.Equal(Pitch{Class: A, Octave: 3}, Transpose(Pitch{Class: C, Octave: 4}, -3))
	assert.Equal(Pitch{Class: C, Octave: -1001}, Transpose(Pitch{Class: C, Octave: -1}, -12000))
}

func TestString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C#4", Pitch{Class: CSharp, Octave: 4}.String())
	assert.Equal("B-2", Pitch{Class: B, Octave: -2}.String())
	assert.Equal("A#0", Pitch{Class: ASharp, Octave: 0}.String())
	assert.Equal("PitchClass(12)", PitchClass(12).String())
	assert.False(PitchClass(12).Valid())
}

func TestParsePitch(t *testing.T) {
	cases := []struct {
		in   string
		want Pitch
	}{
		{"C4", Pitch{Class: C, Octave: 4}},
		{"c#4", Pitch{Class: CSharp, Octave: 4}},
		{"F♯3", Pitch{Class: FSharp, Octave: 3}},
		{"Eb4", Pitch{Class: DSharp, Octave: 4}},
		{"B♭2", Pitch{Class: ASharp, Octave: 2}},
		{"Cb4", Pitch{Class: B, Octave: 3}},
		{"B#4", Pitch{Class: C, Octave: 5}},
		{"G-1", Pitch{Class: G, Octave: -1}},
		{" A0 ", Pitch{Class: A, Octave: 0}},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParsePitch(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParsePitchRoundTripsDisplayForm(t *testing.T) {
	for n := -30; n <= 140; n++ {
		p := FromNumber(n)
		got, err := ParsePitch(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParsePitchErrors(t *testing.T) {
	for _, in := range []string{"", "H4", "C", "C#", "C4x", "#4"} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, err := ParsePitch(in)
			assert.ErrorIs(t, err, ErrInvalidPitch)
		})
	}
}

func TestParsePitchClass(t *testing.T) {
	assert := assert.New(t)

	k, err := ParsePitchClass("Db")
	assert.NoError(err)
	assert.Equal(CSharp, k)

	k, err = ParsePitchClass("Cb")
	assert.NoError(err)
	assert.Equal(B, k)

	_, err = ParsePitchClass("C4")
	assert.ErrorIs(err, ErrInvalidPitch)
}

func TestMidi(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Pitch{Class: C, Octave: 4}, FromMidi(60))
	assert.Equal(Pitch{Class: G, Octave: 9}, FromMidi(127))

	key, ok := Pitch{Class: A, Octave: 4}.Midi()
	assert.True(ok)
	assert.Equal(uint8(69), key)

	_, ok = Pitch{Class: GSharp, Octave: 9}.Midi()
	assert.False(ok)
	_, ok = Pitch{Class: B, Octave: -2}.Midi()
	assert.False(ok)
}

func TestParsePitches(t *testing.T) {
	got, err := ParsePitches([]string{"C4", "E4", "G4"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []Pitch{{Class: D, Octave: 4}, {Class: FSharp, Octave: 4}, {Class: A, Octave: 4}}, got)

	_, err = ParsePitches([]string{"C4", "nope"}, 0)
	assert.ErrorIs(t, err, ErrInvalidPitch)
}
