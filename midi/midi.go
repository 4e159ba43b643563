package midi

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/jsphweid/chordguess/chord"
	"github.com/jsphweid/chordguess/model"
	"github.com/jsphweid/chordguess/note"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("parsing midi file %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file %s: %w", filepath, err)
	}
	return res, nil
}

// Reduce flattens every track into note events ordered by time. At equal
// offsets note offs come first so a re-struck key stays held.
func Reduce(s *smf.SMF) []model.ReducedEvent {
	var events []model.ReducedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, model.ReducedEvent{
					Offset:    s.TimeAt(absTicks),
					IsNoteOff: velocity == 0,
					Note:      key,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, model.ReducedEvent{
					Offset:    s.TimeAt(absTicks),
					IsNoteOff: true,
					Note:      key,
				})
			}
		}
	}
	SortEvents(events)
	return events
}

func SortEvents(events []model.ReducedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Offset != events[j].Offset {
			return events[i].Offset < events[j].Offset
		}
		return events[i].IsNoteOff && !events[j].IsNoteOff
	})
}

// Snapshots replays sorted events and records the held keys after the last
// event at each offset. Offsets where nothing is held are skipped.
func Snapshots(events []model.ReducedEvent) []model.Snapshot {
	var res []model.Snapshot
	held := chord.NewHeld()
	for i, evt := range events {
		if evt.IsNoteOff {
			held.Release(evt.Note)
		} else {
			held.Press(evt.Note)
		}

		lastAtOffset := i == len(events)-1 || events[i+1].Offset != evt.Offset
		if lastAtOffset && held.Len() > 0 {
			res = append(res, model.Snapshot{Offset: evt.Offset, Notes: held.Keys()})
		}
	}
	return res
}

func Pitches(notes model.Notes, transpose int) []note.Pitch {
	res := make([]note.Pitch, len(notes))
	for i, key := range notes {
		res[i] = note.Transpose(note.FromMidi(key), transpose)
	}
	return res
}

// Listen opens a MIDI input port and calls onChange with the held pitches
// after every note on or off. onChange runs on the driver's goroutine.
func Listen(portNum int, onChange func([]note.Pitch)) (stop func(), err error) {
	in, err := gomidi.InPort(portNum)
	if err != nil {
		return nil, fmt.Errorf("finding midi in port %d: %w", portNum, err)
	}

	var mu sync.Mutex
	held := chord.NewHeld()

	stopFn, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		mu.Lock()
		defer mu.Unlock()
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			held.Press(key)
		case msg.GetNoteEnd(&ch, &key):
			held.Release(key)
		default:
			return
		}
		onChange(held.Pitches())
	})
	if err != nil {
		return nil, fmt.Errorf("listening to midi in port %d: %w", portNum, err)
	}
	return stopFn, nil
}
