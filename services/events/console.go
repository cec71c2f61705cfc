package eventsvc

import (
	"context"
	"fmt"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

// ConsolePublisher logs course events; used when no Redis address is configured.
type ConsolePublisher struct {
	logger core.Logger
}

var _ course.Publisher = (*ConsolePublisher)(nil)

func NewConsolePublisher(logger core.Logger) *ConsolePublisher {
	return &ConsolePublisher{logger: logger}
}

func (p *ConsolePublisher) Publish(_ context.Context, evt course.Event) error {
	p.logger.Debug(
		fmt.Sprintf("event %s: course %q", evt.Type, evt.CourseID),
		map[string]interface{}{"event": string(evt.Type), "course_id": evt.CourseID, "progress": course.Progress(evt.Course)},
	)
	return nil
}
