package sqlxrepos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

func TestCourseRow_toCourse(t *testing.T) {
	t.Run("null columns", func(t *testing.T) {
		crs, err := courseRow{ID: "go", Title: "Go"}.toCourse()
		require.NoError(t, err)
		assert.Nil(t, crs.Modules)
		assert.Empty(t, crs.CompletionDate)
	})

	t.Run("json modules & date", func(t *testing.T) {
		row := courseRow{
			ID:             "go",
			Title:          "Go",
			Modules:        null.JSONFrom([]byte(`[{"id":"mod-1","title":"Basics","lessons":null}]`)),
			CompletionDate: null.TimeFrom(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)),
		}
		crs, err := row.toCourse()
		require.NoError(t, err)
		require.Len(t, crs.Modules, 1)
		assert.Equal(t, "Basics", crs.Modules[0].Title)
		assert.Nil(t, crs.Modules[0].Lessons)
		assert.Equal(t, "2024-03-09", crs.CompletionDate)
	})

	t.Run("corrupt modules", func(t *testing.T) {
		_, err := courseRow{ID: "go", Modules: null.JSONFrom([]byte(`{`))}.toCourse()
		assert.Error(t, err)
	})
}

func TestModulesParam(t *testing.T) {
	param, err := modulesParam(nil)
	require.NoError(t, err)
	assert.Nil(t, param)

	param, err = modulesParam([]course.Module{})
	require.NoError(t, err)
	assert.Equal(t, "[]", param)
}

func TestBuildCourseQuery(t *testing.T) {
	enrolled := true
	tests := []struct {
		name      string
		filter    course.QueryFilter
		ordering  []core.DBOrdering
		wantWhere string
		wantOrder string
		wantArgs  []interface{}
	}{
		{
			name:      "defaults",
			wantOrder: " ORDER BY title ASC, id ASC",
		},
		{
			name:      "search & enrolled",
			filter:    course.QueryFilter{Search: "go", Enrolled: &enrolled},
			wantWhere: " WHERE (title ILIKE $1 OR instructor ILIKE $1) AND enrolled = $2",
			wantOrder: " ORDER BY title ASC, id ASC",
			wantArgs:  []interface{}{"%go%", true},
		},
		{
			name:      "unknown ordering fields are dropped",
			ordering:  []core.DBOrdering{{Field: "instructor"}, {Field: "modules; DROP TABLE courses"}},
			wantOrder: " ORDER BY instructor DESC, id ASC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := buildCourseQuery(tt.filter, tt.ordering)
			assert.Equal(t, "SELECT "+courseColumns+" FROM courses"+tt.wantWhere+tt.wantOrder, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
