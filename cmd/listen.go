package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordguess/chord"
	"github.com/jsphweid/chordguess/constants"
	"github.com/jsphweid/chordguess/midi"
	"github.com/jsphweid/chordguess/note"
	"github.com/jsphweid/chordguess/util"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
)

var (
	listenPort      int
	listenTranspose int
)

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", -1, "midi in port number (default $CHORDGUESS_MIDI_PORT or 0)")
	listenCmd.Flags().IntVarP(&listenTranspose, "transpose", "t", 0, "semitones to shift every pitch by")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names chords played on a MIDI keyboard",
	Long:  `Listens to a MIDI input port and prints the chord name whenever the held notes change.`,
	Run: func(cmd *cobra.Command, args []string) {
		port := listenPort
		if port < 0 {
			port = constants.GetMidiPort()
		}
		cobra.CheckErr(listen(cmd.OutOrStdout(), port, listenTranspose))
	},
}

// chordPrinter writes a line per distinct held set. Repeats of the last
// printed set are dropped.
type chordPrinter struct {
	mu        sync.Mutex
	w         io.Writer
	transpose int
	lastKey   string
}

func (p *chordPrinter) print(held []note.Pitch) {
	pitches := util.Map(held, func(n note.Pitch) note.Pitch {
		return note.Transpose(n, p.transpose)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	key := chord.Key(util.Map(pitches, note.ToNumber))
	if key == p.lastKey {
		return
	}
	p.lastKey = key

	if len(pitches) == 0 {
		fmt.Fprintln(p.w, "-")
		return
	}
	names := strings.Join(util.Map(pitches, note.Pitch.String), " ")
	fmt.Fprintf(p.w, "%-24s %s\n", names, chord.Detect(pitches))
}

func listen(w io.Writer, port int, transpose int) error {
	defer gomidi.CloseDriver()

	printer := &chordPrinter{w: w, transpose: transpose}
	debounced := debounce.New(constants.GetDebounce())

	stop, err := midi.Listen(port, func(held []note.Pitch) {
		debounced(func() {
			printer.print(held)
		})
	})
	if err != nil {
		return err
	}
	defer stop()

	fmt.Fprintf(w, "listening on midi in port %d, ctrl-c to stop\n", port)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	return nil
}
