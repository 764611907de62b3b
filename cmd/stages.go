package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/numline/internal/question"
	"github.com/abhisek/numline/internal/stage"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the lesson stages and the questions each one can ask",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		table := stage.Default()

		fmt.Fprintf(out, "%-6s  %-10s  %s\n", "Stage", "Range", "Question kinds")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for i, s := range table.All() {
			kinds, err := question.ValidKindsFor(s)
			if err != nil {
				return err
			}
			names := make([]string, len(kinds))
			for j, k := range kinds {
				names[j] = k.String()
			}
			fmt.Fprintf(out, "%-6d  %-10s  %s\n", i+1, s, strings.Join(names, ", "))
		}

		fmt.Fprintf(out, "\n%d stages, %d question kinds\n", table.Len(), len(question.AllKinds()))
		return nil
	},
}
