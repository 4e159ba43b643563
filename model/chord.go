package model

type Notes = []uint8

// ReducedEvent is a note on or off at an absolute offset in microseconds.
type ReducedEvent struct {
	Offset    int64
	IsNoteOff bool
	Note      uint8
}

// Snapshot is the set of keys held once every event at Offset has applied.
type Snapshot struct {
	Offset int64
	Notes  Notes
}
