package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

const courseColumns = "id, title, instructor, description, thumbnail, modules, enrolled, completion_date, created_at, updated_at"

var (
	courseOrderingFields = []string{"id", "title", "instructor", "created_at", "updated_at"}

	// Field -> column; never interpolate anything else into a query.
	courseFieldColumns = map[course.Field]string{
		course.FieldCompletionDate: "completion_date",
		course.FieldEnrolled:       "enrolled",
	}
)

// courseRow is a row of the "courses" table. modules is nullable JSONB.
type courseRow struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Instructor     string    `db:"instructor"`
	Description    string    `db:"description"`
	Thumbnail      string    `db:"thumbnail"`
	Modules        null.JSON `db:"modules"`
	Enrolled       bool      `db:"enrolled"`
	CompletionDate null.Time `db:"completion_date"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (row courseRow) toCourse() (course.RawCourse, error) {
	crs := course.RawCourse{
		ID:          row.ID,
		Title:       row.Title,
		Instructor:  row.Instructor,
		Description: row.Description,
		Thumbnail:   row.Thumbnail,
		Enrolled:    row.Enrolled,
	}
	if row.Modules.Valid && len(row.Modules.JSON) > 0 {
		if err := json.Unmarshal(row.Modules.JSON, &crs.Modules); err != nil {
			return course.RawCourse{}, errors.Wrapf(err, "decoding modules of course %q", row.ID)
		}
	}
	if row.CompletionDate.Valid {
		crs.CompletionDate = row.CompletionDate.Time.Format(course.DateLayout)
	}
	return crs, nil
}

// modulesParam encodes modules for a JSONB parameter; nil modules are stored as NULL.
// lib/pq sends []byte as bytea, so the JSON goes over the wire as text.
func modulesParam(mods []course.Module) (interface{}, error) {
	if mods == nil {
		return nil, nil
	}
	data, err := json.Marshal(mods)
	if err != nil {
		return nil, errors.Wrap(err, "encoding modules")
	}
	return string(data), nil
}

// buildCourseQuery returns the SELECT statement & its args for filter and ordering.
func buildCourseQuery(filter course.QueryFilter, ordering []core.DBOrdering) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR instructor ILIKE $%d)", len(args), len(args)))
	}
	if filter.Enrolled != nil {
		args = append(args, *filter.Enrolled)
		conds = append(conds, fmt.Sprintf("enrolled = $%d", len(args)))
	}

	var q strings.Builder
	q.WriteString("SELECT " + courseColumns + " FROM courses")
	if len(conds) > 0 {
		q.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	ordering = core.AllowedOrderings(ordering, courseOrderingFields...)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "title", Ascending: true}}
	}
	orders := make([]string, 0, len(ordering)+1)
	for _, ord := range ordering {
		orders = append(orders, ord.String())
	}
	orders = append(orders, "id ASC")
	q.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	return q.String(), args
}

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) getRow(ctx context.Context, query string, args ...interface{}) (course.RawCourse, error) {
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return course.RawCourse{}, course.ErrNotFound
		}
		return course.RawCourse{}, err
	}
	return row.toCourse()
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.RawCourse) (course.RawCourse, error) {
	mods, err := modulesParam(crs.Modules)
	if err != nil {
		return course.RawCourse{}, err
	}
	var date interface{}
	if crs.CompletionDate != "" {
		date = crs.CompletionDate
	}

	q := `INSERT INTO courses (id, title, instructor, description, thumbnail, modules, enrolled, completion_date)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8::date)
		RETURNING ` + courseColumns
	created, err := repo.getRow(ctx, q,
		crs.ID, crs.Title, crs.Instructor, crs.Description, crs.Thumbnail, mods, crs.Enrolled, date,
	)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return course.RawCourse{}, course.ErrCourseExists
		}
		return course.RawCourse{}, errors.Wrap(err, "inserting course")
	}
	return created, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, filter course.QueryFilter, ordering []core.DBOrdering) ([]course.RawCourse, error) {
	q, args := buildCourseQuery(filter, ordering)

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	courses := make([]course.RawCourse, 0, len(rows))
	for _, row := range rows {
		crs, err := row.toCourse()
		if err != nil {
			return nil, err
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

func (repo *courseRepository) FetchCourse(ctx context.Context, id string) (course.RawCourse, error) {
	crs, err := repo.getRow(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = $1", id)
	if err != nil && err != course.ErrNotFound {
		return course.RawCourse{}, errors.Wrapf(err, "selecting course %q", id)
	}
	return crs, err
}

func (repo *courseRepository) PersistCourseModules(ctx context.Context, id string, modules []course.Module) (course.RawCourse, error) {
	mods, err := modulesParam(modules)
	if err != nil {
		return course.RawCourse{}, err
	}
	q := "UPDATE courses SET modules = $2::jsonb, updated_at = NOW() WHERE id = $1 RETURNING " + courseColumns
	crs, err := repo.getRow(ctx, q, id, mods)
	if err != nil && err != course.ErrNotFound {
		return course.RawCourse{}, errors.Wrapf(err, "updating modules of course %q", id)
	}
	return crs, err
}

func (repo *courseRepository) PersistCourseField(ctx context.Context, id string, field course.Field, value interface{}) (course.RawCourse, error) {
	col, ok := courseFieldColumns[field]
	if !ok {
		return course.RawCourse{}, errors.Errorf("invalid course field %q", field)
	}
	q := fmt.Sprintf("UPDATE courses SET %s = $2, updated_at = NOW() WHERE id = $1 RETURNING %s", col, courseColumns)
	crs, err := repo.getRow(ctx, q, id, value)
	if err != nil && err != course.ErrNotFound {
		return course.RawCourse{}, errors.Wrapf(err, "updating %s of course %q", col, id)
	}
	return crs, err
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return errors.Wrapf(err, "deleting course %q", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "deleting course %q", id)
	}
	if n == 0 {
		return course.ErrNotFound
	}
	return nil
}
