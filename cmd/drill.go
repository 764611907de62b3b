package cmd

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/spf13/cobra"

	"github.com/abhisek/numline/internal/console"
	"github.com/abhisek/numline/internal/lesson"
	"github.com/abhisek/numline/internal/question"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Play a lesson as plain text (no terminal UI)",
	Long: `Play one lesson on standard input and output.

Each prompt shows the number line as a list of values. Type the number you
select and press Enter. Type q to stop.`,
	RunE: runDrill,
}

func runDrill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	summary, err := console.Run(ctx, cmd.InOrStdin(), out,
		lesson.WithConfig(appCfg.Lesson()),
		lesson.WithQuestionSource(question.NewSeededGenerator(appCfg.Seed)),
		lesson.WithLogger(ctxlog.From(ctx)))
	if errors.Is(err, console.ErrQuit) {
		fmt.Fprintln(out, "Bye!")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nRight first time: %d   Right on second try: %d   Answers shown: %d   Final stage: %d\n",
		summary.FirstTry, summary.Retried, summary.Revealed, summary.FinalStage)
	return nil
}
