package course

import (
	"context"
	"math"

	"github.com/lyceumacademy/lyceum/core"
)

// Tracker stamps a course's completion date once all of its lessons are completed.
type Tracker struct {
	repo   Repository
	events Publisher
	logger core.Logger
}

func NewTracker(repo Repository, events Publisher, logger core.Logger) *Tracker {
	return &Tracker{repo: repo, events: events, logger: logger}
}

// MaybeMarkComplete persists today's date as the course's completion date when every lesson is
// completed and no date is set yet. Otherwise crs is returned unchanged and marked is false.
// A completion date is never cleared, even if a lesson is reopened later.
func (tr *Tracker) MaybeMarkComplete(ctx context.Context, crs Course) (updated Course, marked bool, err error) {
	if crs.CompletionDate != "" || !AllLessonsCompleted(crs) {
		return crs, false, nil
	}

	raw, err := tr.repo.PersistCourseField(ctx, crs.ID, FieldCompletionDate, NowFunc().Format(DateLayout))
	if err != nil {
		return Course{}, false, err
	}
	updated = Sanitize(raw)
	publish(ctx, tr.events, tr.logger, EventCourseCompleted, updated)
	return updated, true, nil
}

// AllLessonsCompleted reports whether the course has lessons and all of them are completed.
func AllLessonsCompleted(crs Course) bool {
	if crs.LessonCount() == 0 {
		return false
	}
	for _, mod := range crs.Modules {
		for _, lsn := range mod.Lessons {
			if !lsn.Completed {
				return false
			}
		}
	}
	return true
}

// Progress returns the rounded percentage of completed lessons; 0 for a course without lessons.
func Progress(crs Course) int {
	total := crs.LessonCount()
	if total == 0 {
		return 0
	}
	var done int
	for _, mod := range crs.Modules {
		for _, lsn := range mod.Lessons {
			if lsn.Completed {
				done++
			}
		}
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
