package cmd

import (
	"github.com/jsphweid/chordguess/constants"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordguess",
	Short: "Guesses chord names",
	Long:  `Guesses the name of the chord formed by a set of pitches, from the command line, a MIDI file, a MIDI keyboard or over HTTP.`,
}

func init() {
	cobra.OnInitialize(func() {
		constants.LoadEnv()
	})
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
