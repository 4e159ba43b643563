package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordguess/chord"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Lists chord templates",
	Long:  `Lists chord templates in the order used to break ties.`,
	Run: func(cmd *cobra.Command, args []string) {
		listTemplates(cmd.OutOrStdout())
	},
}

func listTemplates(w io.Writer) {
	for _, t := range chord.Templates() {
		label := t.Label
		if label == "" {
			label = `""`
		}
		fmt.Fprintf(w, "%-6s %v\n", label, t.Intervals)
	}
}
