package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordguess/chord"
	"github.com/jsphweid/chordguess/note"
	"github.com/jsphweid/chordguess/util"
	"github.com/spf13/cobra"
)

var (
	detectTranspose int
	detectVerbose   bool
)

func init() {
	detectCmd.Flags().IntVarP(&detectTranspose, "transpose", "t", 0, "semitones to shift every pitch by")
	detectCmd.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "print the score of every template")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:     "detect [pitch...]",
	Short:   "Names the chord formed by pitches",
	Long:    `Names the chord formed by pitches such as C4 E4 G4. Sharps (C#4) and flats (Eb4) are both accepted.`,
	Example: "  chordguess detect E4 G4 C5",
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(detect(cmd.OutOrStdout(), args, detectTranspose, detectVerbose))
	},
}

func detect(w io.Writer, args []string, transpose int, verbose bool) error {
	pitches, err := note.ParsePitches(args, transpose)
	if err != nil {
		return err
	}

	if verbose && len(pitches) > 0 {
		structure := chord.StructureOf(util.Map(pitches, note.ToNumber))
		fmt.Fprintf(w, "structure: %v\n", structure)
		for _, t := range chord.Templates() {
			fmt.Fprintf(w, "  %-6s %-16v %7.3f\n", t.Label, t.Intervals, chord.Score(structure, t.Intervals))
		}
	}

	fmt.Fprintln(w, chord.Detect(pitches))
	return nil
}
