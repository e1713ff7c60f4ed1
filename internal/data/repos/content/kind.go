package content

import "fmt"

// Kind selects one of the three uniform assignment collections. Keeping the
// set closed means a misspelled collection name can never reach SQL.
type Kind int

const (
	KindQuiz Kind = iota
	KindActivity
	KindWorksheet
)

func Kinds() []Kind {
	return []Kind{KindQuiz, KindActivity, KindWorksheet}
}

func (k Kind) Table() string {
	switch k {
	case KindQuiz:
		return "quizzes"
	case KindActivity:
		return "activities"
	case KindWorksheet:
		return "worksheets"
	}
	panic(fmt.Sprintf("content: unknown kind %d", int(k)))
}

func (k Kind) String() string {
	switch k {
	case KindQuiz:
		return "quiz"
	case KindActivity:
		return "activity"
	case KindWorksheet:
		return "worksheet"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}
