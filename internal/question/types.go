package question

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Kind identifies one of the number-line question types.
type Kind int

const (
	IdentifySpecificNumber Kind = iota + 1
	IdentifyGreaterThanNumber
	IdentifyLessThanNumber
	IdentifyBetweenNumbers
	LocateZero
	IdentifyLargestNumber
	IdentifySmallestNumber
	IdentifyPositiveNumber
	IdentifyNegativeNumber
	OrderNumbers
	DistanceFromZero
	IdentifyEvenNumber
	IdentifyOddNumber
)

var kindNames = map[Kind]string{
	IdentifySpecificNumber:    "IdentifySpecificNumber",
	IdentifyGreaterThanNumber: "IdentifyGreaterThanNumber",
	IdentifyLessThanNumber:    "IdentifyLessThanNumber",
	IdentifyBetweenNumbers:    "IdentifyBetweenNumbers",
	LocateZero:                "LocateZero",
	IdentifyLargestNumber:     "IdentifyLargestNumber",
	IdentifySmallestNumber:    "IdentifySmallestNumber",
	IdentifyPositiveNumber:    "IdentifyPositiveNumber",
	IdentifyNegativeNumber:    "IdentifyNegativeNumber",
	OrderNumbers:              "OrderNumbers",
	DistanceFromZero:          "DistanceFromZero",
	IdentifyEvenNumber:        "IdentifyEvenNumber",
	IdentifyOddNumber:         "IdentifyOddNumber",
}

var (
	ErrUnknownKind      = errors.New("unknown question kind")
	ErrNoValidQuestion  = errors.New("no valid question kind for stage")
	ErrKindNotValidHere = errors.New("question kind not valid for stage")
)

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// AllKinds returns every question kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := IdentifySpecificNumber; k <= IdentifyOddNumber; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind looks up a kind by its name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, goerr.Wrap(ErrUnknownKind, "cannot parse question kind", goerr.V("name", name))
}

// Range is an integer interval. Whether its ends are inclusive depends on
// the question kind that produced it: IdentifyBetweenNumbers uses it as an
// open interval, the other kinds as a closed one.
type Range struct {
	Min int
	Max int
}

// Truth is the ground truth of a question. Which fields are meaningful is
// fixed by the question kind.
type Truth struct {
	// Target is the single correct number, or the pivot for greater/less
	// than questions. Unused by range and parity kinds.
	Target int

	// Range is set for IdentifyGreaterThanNumber, IdentifyLessThanNumber,
	// IdentifyBetweenNumbers, IdentifyPositiveNumber and
	// IdentifyNegativeNumber.
	Range *Range

	// Operands holds the two values compared by OrderNumbers.
	Operands [2]int
}

// Question is a generated question ready to be shown.
type Question struct {
	Kind   Kind
	Truth  Truth
	Prompt string
}
