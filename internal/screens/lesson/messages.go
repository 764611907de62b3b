package lesson

import lsn "github.com/abhisek/numline/internal/lesson"

// continueMsg is delivered once a continuation's delay has elapsed.
type continueMsg struct {
	Continuation lsn.Continuation
}
