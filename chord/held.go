package chord

import (
	"github.com/jsphweid/chordguess/note"
	"github.com/jsphweid/chordguess/util"
	"golang.org/x/exp/slices"
)

// Held tracks which MIDI keys are currently down. It is not safe for
// concurrent use.
type Held struct {
	on map[uint8]bool
}

func NewHeld() *Held {
	return &Held{on: make(map[uint8]bool)}
}

func (h *Held) Press(key uint8) {
	h.on[key] = true
}

func (h *Held) Release(key uint8) {
	delete(h.on, key)
}

func (h *Held) Len() int {
	return len(h.on)
}

// Keys returns the held MIDI keys in ascending order.
func (h *Held) Keys() []uint8 {
	keys := util.GetKeys(h.on)
	slices.Sort(keys)
	return keys
}

func (h *Held) Numbers() []int {
	keys := h.Keys()
	res := make([]int, len(keys))
	for i, k := range keys {
		res[i] = int(k)
	}
	return res
}

func (h *Held) Pitches() []note.Pitch {
	keys := h.Keys()
	res := make([]note.Pitch, len(keys))
	for i, k := range keys {
		res[i] = note.FromMidi(k)
	}
	return res
}

func (h *Held) Key() string {
	return Key(h.Numbers())
}
