package course

import (
	"context"
	"fmt"
	"time"

	"github.com/lyceumacademy/lyceum/core"
)

type EventType string

const (
	EventCourseUpdated   EventType = "course.updated"
	EventCourseCompleted EventType = "course.completed"
)

// Event is published after a course document changed.
type Event struct {
	Type       EventType `json:"type"`
	CourseID   string    `json:"course_id"`
	Course     Course    `json:"course"`
	OccurredAt time.Time `json:"occurred_at"` // UTC
}

func NewEvent(typ EventType, crs Course) Event {
	return Event{
		Type:       typ,
		CourseID:   crs.ID,
		Course:     crs,
		OccurredAt: NowFunc().UTC(),
	}
}

// Publisher is any service that can broadcast course events.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// publish never fails the calling operation: the document is already persisted.
func publish(ctx context.Context, events Publisher, logger core.Logger, typ EventType, crs Course) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, NewEvent(typ, crs)); err != nil && logger != nil {
		logger.Warn(fmt.Sprintf("course.publish(%s, %s): %v", typ, crs.ID, err), err)
	}
}
