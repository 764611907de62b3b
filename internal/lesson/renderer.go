package lesson

import "github.com/abhisek/numline/internal/stage"

// Screen names one of the front end's top-level views.
type Screen string

const (
	ScreenInitial    Screen = "initial"
	ScreenLesson     Screen = "lesson"
	ScreenCompletion Screen = "completion"
)

// Renderer is the front end a Session drives. All calls happen
// synchronously from within Session methods.
type Renderer interface {
	// RenderNumberLine draws a tick for every integer of the stage.
	RenderNumberLine(s stage.Stage)

	// ShowPrompt replaces the question text.
	ShowPrompt(text string)

	// AppendFeedback adds one feedback entry. Front ends keep the most
	// recent entries only (see FeedbackLog).
	AppendFeedback(text string, correct bool)

	// HighlightValues marks every tick whose value satisfies match.
	HighlightValues(match func(int) bool)

	// ShowProgress shows "Question current of total".
	ShowProgress(current, total int)

	// ShowCompletionSummary shows the end-of-lesson summary.
	ShowCompletionSummary(text string)

	// ShowScreen switches the visible screen.
	ShowScreen(name Screen)
}
