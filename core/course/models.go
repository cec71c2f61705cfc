package course

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format of Course.CompletionDate.
const DateLayout = "2006-01-02"

const (
	defaultModuleTitle    = "Introduction"
	defaultLessonDuration = 10 // minutes
)

var (
	NowFunc = time.Now // mockable

	// NewID returns a fresh identifier for a nested document node ("mod", "lesson", "q").
	NewID = func(prefix string) string { return prefix + "-" + uuid.New().String() } // mockable
)

type LessonKind string

const (
	KindVideo LessonKind = "video"
	KindText  LessonKind = "text"
	KindQuiz  LessonKind = "quiz"
)

var LessonKinds = []LessonKind{KindVideo, KindText, KindQuiz}

func (k LessonKind) Valid() bool {
	for _, kind := range LessonKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Field is a scalar Course column the Repository may overwrite on its own.
type Field string

const (
	FieldCompletionDate Field = "completion_date"
	FieldEnrolled       Field = "enrolled"
)

func (f Field) Valid() bool {
	return f == FieldCompletionDate || f == FieldEnrolled
}

// Question is a multiple-choice item of a quiz Lesson.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
}

type Lesson struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Duration  int        `json:"duration"` // minutes
	Kind      LessonKind `json:"type"`
	Content   string     `json:"content"`
	VideoURL  string     `json:"videoUrl,omitempty"`
	Completed bool       `json:"completed"`
	Questions []Question `json:"questions"`
}

type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course is a sanitized course document: Modules, every Module.Lessons and every
// Lesson.Questions are non-nil.
type Course struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Instructor     string   `json:"instructor"`
	Description    string   `json:"description"`
	Thumbnail      string   `json:"thumbnail"`
	Modules        []Module `json:"modules"`
	Enrolled       bool     `json:"enrolled"`
	CompletionDate string   `json:"completionDate,omitempty"` // DateLayout
}

// RawCourse is a course document as the Repository stores it; any nested collection may be nil.
// Use Sanitize to turn it into a Course.
type RawCourse Course

// LessonCount returns the number of lessons across all modules.
func (c Course) LessonCount() int {
	var n int
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string      `json:"title" validate:"notblank"`
	Instructor  string      `json:"instructor"`
	Description string      `json:"description"`
	Thumbnail   string      `json:"thumbnail" validate:"omitempty,url"`
	Modules     []NewModule `json:"modules" validate:"omitempty,dive"`
}

// NewModule contains information needed to append a Module to a Course.
type NewModule struct {
	Title string `json:"title" validate:"notblank"`
}

// UpdateModule defines what may be changed on an existing Module.
type UpdateModule struct {
	Title string `json:"title" validate:"notblank"`
}

// NewQuestion contains information needed to add a Question to a quiz Lesson.
type NewQuestion struct {
	Text          string   `json:"text" validate:"notblank"`
	Options       []string `json:"options" validate:"min=2,max=4,dive,notblank"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}

// UpdateQuestion defines what may be changed on an existing Question. Nil fields are preserved.
type UpdateQuestion struct {
	Text          *string   `json:"text" validate:"omitempty,notblank"`
	Options       *[]string `json:"options" validate:"omitempty,min=2,max=4,dive,notblank"`
	CorrectAnswer *int      `json:"correctAnswer" validate:"omitempty,gte=0"`
}

// NewLesson contains information needed to append a Lesson to a Module.
type NewLesson struct {
	Title     string        `json:"title" validate:"notblank"`
	Kind      LessonKind    `json:"type" validate:"lessonkind"`
	Content   string        `json:"content"`
	Duration  int           `json:"duration" validate:"gte=0"` // 0 defaults to 10 minutes
	VideoURL  string        `json:"videoUrl" validate:"omitempty,url"`
	Questions []NewQuestion `json:"questions" validate:"omitempty,dive"`
}

// UpdateLesson defines what may be changed on an existing Lesson. Nil fields are preserved.
// Questions, when set, replaces the whole quiz.
type UpdateLesson struct {
	Title     *string        `json:"title" validate:"omitempty,notblank"`
	Kind      *LessonKind    `json:"type" validate:"omitempty,lessonkind"`
	Content   *string        `json:"content"`
	Duration  *int           `json:"duration" validate:"omitempty,gt=0"`
	VideoURL  *string        `json:"videoUrl"`
	Questions *[]NewQuestion `json:"questions" validate:"omitempty,dive"`
}

type QueryFilter struct {
	Search   string `query:"search"`
	Enrolled *bool  `query:"enrolled"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Enrolled == nil
}

// QuizResult is the outcome of a quiz submission.
type QuizResult struct {
	Score     int    `json:"score"`
	Passed    bool   `json:"passed"`
	Completed bool   `json:"completed"`
	Course    Course `json:"course"`
}
