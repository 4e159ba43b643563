package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordguess/chord"
	"github.com/jsphweid/chordguess/midi"
	"github.com/jsphweid/chordguess/model"
	"github.com/jsphweid/chordguess/note"
	"github.com/jsphweid/chordguess/util"
	"github.com/spf13/cobra"
)

var scanTranspose int

func init() {
	scanCmd.Flags().IntVarP(&scanTranspose, "transpose", "t", 0, "semitones to shift every pitch by")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [file.mid]",
	Short: "Names every chord in a MIDI file",
	Long:  `Prints the held notes and their chord name each time the set of held notes changes in a standard MIDI file.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := midi.ReadMidiFile(args[0])
		cobra.CheckErr(err)
		printSnapshots(cmd.OutOrStdout(), midi.Snapshots(midi.Reduce(s)), scanTranspose)
	},
}

func printSnapshots(w io.Writer, snaps []model.Snapshot, transpose int) {
	for _, snap := range snaps {
		pitches := midi.Pitches(snap.Notes, transpose)
		names := strings.Join(util.Map(pitches, note.Pitch.String), " ")
		fmt.Fprintf(w, "%9.3fs  %-24s %s\n", float64(snap.Offset)/1e6, names, chord.Detect(pitches))
	}
}
