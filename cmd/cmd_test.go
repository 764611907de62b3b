package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numline/internal/config"
)

func execute(t *testing.T, input string, args ...string) string {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

// resetFlags restores every flag to its default so one test's arguments do
// not leak into the next execution of the shared root command.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func TestStagesCommand(t *testing.T) {
	out := execute(t, "", "stages")
	assert.Contains(t, out, "[1, 10]")
	assert.Contains(t, out, "[-20, 20]")
	assert.Contains(t, out, "IdentifyNegativeNumber")
	assert.Contains(t, out, "4 stages, 13 question kinds")
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "", "version")
	assert.Equal(t, "numline (devel)\n", out)
}

func TestDrillCommand(t *testing.T) {
	t.Setenv(config.EnvCorrectDelay, "0s")
	t.Setenv(config.EnvRevealDelay, "0s")

	// 999 is off every line and is skipped. After that, two on-line answers
	// per question always finish it, by a correct answer or a reveal.
	input := "999\n" + strings.Repeat("1\n", 4)
	out := execute(t, input, "drill", "--questions", "2", "--seed", "11")

	assert.Contains(t, out, "Please pick a number on the line, from 1 to 10.")
	assert.Contains(t, out, "Question 1 of 2")
	assert.Contains(t, out, "You have completed the lesson with")
	assert.Contains(t, out, "Final stage: 1")
	assert.Equal(t, 2, appCfg.TotalQuestions)
	assert.Equal(t, uint64(11), appCfg.Seed)
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	t.Setenv(config.EnvCorrectDelay, "0s")
	t.Setenv(config.EnvRevealDelay, "0s")

	execute(t, "q\n", "drill", "--questions", "2", "--seed", "11")
	require.Equal(t, 2, appCfg.TotalQuestions)

	execute(t, "", "stages")
	assert.Equal(t, config.Default().TotalQuestions, appCfg.TotalQuestions)
	assert.Equal(t, config.Default().Seed, appCfg.Seed)
}

func TestResolveConfigRejectsBadFlag(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	rootCmd.SetArgs([]string{"stages", "--log-level", "loud"})
	err := rootCmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	rootCmd.SetArgs([]string{"stages", "--log-level", "info"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
}
