package course

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/lyceumacademy/lyceum/core"
)

var (
	lessonKindTag  = "lessonkind"
	lessonKindText = fmt.Sprintf("must be one of %q, %q or %q", KindVideo, KindText, KindQuiz)

	correctAnswerTag  = "correctanswer"
	correctAnswerText = "correct answer must be the index of one of the options"

	slugText = "title must contain at least one letter or digit"
)

// InitValidators registers the course validators & their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(lessonKindTag, lessonKindValidation)
	core.RegisterCustomTranslation(validate, translator, lessonKindTag, lessonKindText)

	validate.RegisterStructValidation(questionStructValidation, NewQuestion{})
	core.RegisterCustomTranslation(validate, translator, correctAnswerTag, correctAnswerText)
}

// lessonKindValidation checks that the field is one of LessonKinds
func lessonKindValidation(fl validator.FieldLevel) bool {
	switch kind := fl.Field().Interface().(type) {
	case LessonKind:
		return kind.Valid()
	case string:
		return LessonKind(kind).Valid()
	}
	return false
}

// questionStructValidation checks that CorrectAnswer points at one of Options.
func questionStructValidation(sl validator.StructLevel) {
	if q, ok := sl.Current().Interface().(NewQuestion); ok {
		if q.CorrectAnswer >= len(q.Options) {
			sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", correctAnswerTag, "")
		}
	}
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Instructor = core.CleanString(nc.Instructor)
	nc.Description = core.CleanString(nc.Description)
	nc.Thumbnail = core.CleanString(nc.Thumbnail)
	for i := range nc.Modules {
		nc.Modules[i].Title = core.CleanString(nc.Modules[i].Title)
	}

	if err := validate.Struct(nc); err != nil {
		return err
	}
	if core.Slugify(nc.Title) == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "title", Error: slugText})
	}
	return nil
}

func (nm *NewModule) Validate(validate *validator.Validate) error {
	nm.Title = core.CleanString(nm.Title)
	return validate.Struct(nm)
}

func (um *UpdateModule) Validate(validate *validator.Validate) error {
	um.Title = core.CleanString(um.Title)
	return validate.Struct(um)
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.VideoURL = core.CleanString(nl.VideoURL)
	if nl.Kind == "" {
		nl.Kind = KindText
	}
	if nl.Kind != KindQuiz {
		nl.Questions = nil
	}
	return validate.Struct(nl)
}

func (ul *UpdateLesson) Validate(validate *validator.Validate) error {
	if ul.Title != nil {
		title := core.CleanString(*ul.Title)
		ul.Title = &title
	}
	return validate.Struct(ul)
}

func (nq *NewQuestion) Validate(validate *validator.Validate) error {
	nq.Text = core.CleanString(nq.Text)
	return validate.Struct(nq)
}

func (uq *UpdateQuestion) Validate(validate *validator.Validate) error {
	if uq.Text != nil {
		text := core.CleanString(*uq.Text)
		uq.Text = &text
	}
	return validate.Struct(uq)
}

// validateMerged re-checks the option/answer pairing of a question after a partial update.
func validateMerged(q Question) error {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return core.NewValidationError(nil, core.FieldError{Field: "correctAnswer", Error: correctAnswerText})
	}
	return nil
}
