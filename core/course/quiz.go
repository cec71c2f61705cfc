package course

import (
	"context"
	"math"

	"github.com/lyceumacademy/lyceum/core"
)

// DefaultPassPercent is the minimum quiz score (inclusive) needed to pass.
const DefaultPassPercent = 70

// GradeQuiz returns round(100 * correct / total). answers maps a question ID to the selected
// option index; unanswered questions count as wrong.
func GradeQuiz(questions []Question, answers map[string]int) (int, error) {
	if len(questions) == 0 {
		return 0, ErrEmptyQuiz
	}
	var correct int
	for _, q := range questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectAnswer {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions)))), nil
}

func Passed(score, passPercent int) bool {
	return score >= passPercent
}

// SubmitQuiz grades the answers of a quiz lesson. A passing score marks the lesson completed;
// a failing one never reopens it.
func (svc *Service) SubmitQuiz(ctx context.Context, courseID, moduleID, lessonID string, answers map[string]int) (QuizResult, error) {
	crs, err := svc.Get(ctx, courseID)
	if err != nil {
		return QuizResult{}, err
	}
	lsn, err := crs.FindLesson(moduleID, lessonID)
	if err != nil {
		return QuizResult{}, err
	}
	if lsn.Kind != KindQuiz {
		return QuizResult{}, core.NewValidationError(ErrNotQuiz, core.FieldError{Field: "type", Error: ErrNotQuiz.Error()})
	}

	score, err := GradeQuiz(lsn.Questions, answers)
	if err != nil {
		return QuizResult{}, core.NewValidationError(err, core.FieldError{Field: "questions", Error: err.Error()})
	}
	res := QuizResult{
		Score:     score,
		Passed:    Passed(score, svc.passPercent),
		Completed: lsn.Completed,
		Course:    crs,
	}
	if res.Passed && !lsn.Completed {
		lsn, crs, err = svc.SetLessonCompletion(ctx, courseID, moduleID, lessonID, true)
		if err != nil {
			return QuizResult{}, err
		}
		res.Completed = lsn.Completed
		res.Course = crs
	}
	return res, nil
}
