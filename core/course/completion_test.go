package course_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyceumacademy/lyceum/core/course"
	"github.com/lyceumacademy/lyceum/tests"
)

func mockNow(t *testing.T, now time.Time) {
	orig := course.NowFunc
	course.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { course.NowFunc = orig })
}

func completeAll(raw course.RawCourse) course.RawCourse {
	for i := range raw.Modules {
		for j := range raw.Modules[i].Lessons {
			raw.Modules[i].Lessons[j].Completed = true
		}
	}
	return raw
}

func TestTracker_MaybeMarkComplete(t *testing.T) {
	mockNow(t, time.Date(2024, 5, 17, 23, 30, 0, 0, time.UTC))

	t.Run("all lessons completed", func(t *testing.T) {
		env := setup(t)
		tracker := course.NewTracker(env.repo, env.events, env.logger)
		crs := testutil.CreateCourse(t, env.repo, completeAll(sampleCourse()))

		updated, marked, err := tracker.MaybeMarkComplete(ctx, crs)
		require.NoError(t, err)
		assert.True(t, marked)
		assert.Equal(t, "2024-05-17", updated.CompletionDate)
		assert.Equal(t, crs.Modules, updated.Modules)
		assert.Equal(t, []course.EventType{course.EventCourseCompleted}, env.events.Types())

		stored, err := env.svc.Get(ctx, crs.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-05-17", stored.CompletionDate)

		// idempotent
		again, marked, err := tracker.MaybeMarkComplete(ctx, updated)
		require.NoError(t, err)
		assert.False(t, marked)
		assert.Equal(t, updated, again)
	})

	t.Run("one lesson left", func(t *testing.T) {
		env := setup(t)
		tracker := course.NewTracker(env.repo, env.events, env.logger)
		raw := completeAll(sampleCourse())
		raw.Modules[1].Lessons[0].Completed = false
		crs := testutil.CreateCourse(t, env.repo, raw)

		updated, marked, err := tracker.MaybeMarkComplete(ctx, crs)
		require.NoError(t, err)
		assert.False(t, marked)
		assert.Empty(t, updated.CompletionDate)
		assert.Empty(t, env.events.Events)
	})

	t.Run("no lessons", func(t *testing.T) {
		env := setup(t)
		tracker := course.NewTracker(env.repo, env.events, env.logger)
		crs := testutil.CreateCourse(t, env.repo, course.RawCourse{ID: "empty", Modules: []course.Module{{ID: "m1"}}})

		_, marked, err := tracker.MaybeMarkComplete(ctx, crs)
		require.NoError(t, err)
		assert.False(t, marked)
	})

	t.Run("date is sticky", func(t *testing.T) {
		env := setup(t)
		tracker := course.NewTracker(env.repo, env.events, env.logger)
		raw := completeAll(sampleCourse())
		raw.CompletionDate = "2024-01-01"
		testutil.CreateCourse(t, env.repo, raw)

		_, crs, err := env.svc.SetLessonCompletion(ctx, raw.ID, "m1", "l1", false)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", crs.CompletionDate)

		_, crs, err = env.svc.SetLessonCompletion(ctx, raw.ID, "m1", "l1", true)
		require.NoError(t, err)
		updated, marked, err := tracker.MaybeMarkComplete(ctx, crs)
		require.NoError(t, err)
		assert.False(t, marked)
		assert.Equal(t, "2024-01-01", updated.CompletionDate)
	})

	t.Run("storage failure", func(t *testing.T) {
		env := setup(t)
		crs := testutil.CreateCourse(t, env.repo, completeAll(sampleCourse()))
		tracker := course.NewTracker(&failingRepo{Repository: env.repo}, env.events, env.logger)

		_, marked, err := tracker.MaybeMarkComplete(ctx, crs)
		assert.Equal(t, errStorage, errors.Cause(err))
		assert.False(t, marked)
	})
}

func TestProgress(t *testing.T) {
	raw := sampleCourse()
	tests := []struct {
		name string
		crs  course.Course
		want int
	}{
		{name: "no lessons", crs: course.Sanitize(course.RawCourse{}), want: 0},
		{name: "none completed", crs: course.Sanitize(raw), want: 0},
		{name: "all completed", crs: course.Sanitize(completeAll(sampleCourse())), want: 100},
	}
	oneOfThree := sampleCourse()
	oneOfThree.Modules[0].Lessons[0].Completed = true
	tests = append(tests, struct {
		name string
		crs  course.Course
		want int
	}{name: "one of three", crs: course.Sanitize(oneOfThree), want: 33})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, course.Progress(tt.crs))
			assert.Equal(t, tt.want == 100, course.AllLessonsCompleted(tt.crs))
		})
	}
}
