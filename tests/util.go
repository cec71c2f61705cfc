package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

// NewValidator returns a validator with the core & course validators registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	return validate
}

// NewConfig returns a TEST configuration that needs no environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:             "TEST",
		TestMode:        true,
		AppName:         "Lyceum Academy",
		SecretKey:       "test-secret",
		FrontendBaseURL: "https://lyceum.test",
		Server:          core.ServerConfig{JWTExpirationDelta: time.Hour},
		Course:          core.CourseConfig{QuizPassPercent: course.DefaultPassPercent},
	}
}

// CreateCourse stores raw as is, so nested collections may be nil.
func CreateCourse(t *testing.T, repo course.Repository, raw course.RawCourse) course.Course {
	t.Helper()
	created, err := repo.CreateCourse(context.Background(), raw)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return course.Sanitize(created)
}

// Lesson returns a text lesson, or a quiz one when questions are given.
func Lesson(id string, completed bool, questions ...course.Question) course.Lesson {
	lsn := course.Lesson{
		ID:        id,
		Title:     "Lesson " + id,
		Duration:  10,
		Kind:      course.KindText,
		Completed: completed,
		Questions: []course.Question{},
	}
	if len(questions) > 0 {
		lsn.Kind = course.KindQuiz
		lsn.Questions = questions
	}
	return lsn
}

// Logger discards everything but remembers the messages it was given.
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *Logger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, msg)
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log(msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log(msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log(msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log(msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log(msg) }

// Publisher records published events; Publish returns Err when set.
type Publisher struct {
	mu     sync.Mutex
	Events []course.Event
	Err    error
}

func (p *Publisher) Publish(_ context.Context, evt course.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, evt)
	return nil
}

func (p *Publisher) Types() []course.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]course.EventType, 0, len(p.Events))
	for _, evt := range p.Events {
		types = append(types, evt.Type)
	}
	return types
}

// Mailer records the messages it was asked to send.
type Mailer struct {
	mu       sync.Mutex
	Messages []*core.EmailMessage
}

func (m *Mailer) SendMessages(messages ...*core.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, messages...)
}

func (m *Mailer) Sent() []*core.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*core.EmailMessage(nil), m.Messages...)
}
