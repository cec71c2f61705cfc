package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

var courseOrderingFields = []string{"id", "title", "instructor"}

type courseRepository struct {
	db *courseTable
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) get(id string) (course.RawCourse, error) {
	data, ok := repo.db.table[id]
	if !ok {
		return course.RawCourse{}, course.ErrNotFound
	}
	crs, err := decode(data)
	return crs, errors.Wrap(err, "decoding course")
}

func (repo *courseRepository) put(crs course.RawCourse) (course.RawCourse, error) {
	data, err := encode(crs)
	if err != nil {
		return course.RawCourse{}, errors.Wrap(err, "encoding course")
	}
	repo.db.table[crs.ID] = data
	return repo.get(crs.ID)
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.RawCourse) (course.RawCourse, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[crs.ID]; ok {
		return course.RawCourse{}, course.ErrCourseExists
	}
	return repo.put(crs)
}

func (repo *courseRepository) QueryCourses(_ context.Context, filter course.QueryFilter, ordering []core.DBOrdering) ([]course.RawCourse, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	search := strings.ToLower(filter.Search)
	courses := make([]course.RawCourse, 0, len(repo.db.table))
	for id := range repo.db.table {
		crs, err := repo.get(id)
		if err != nil {
			return nil, err
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(crs.Title), search) &&
			!strings.Contains(strings.ToLower(crs.Instructor), search) {
			continue
		}
		if filter.Enrolled != nil && crs.Enrolled != *filter.Enrolled {
			continue
		}
		courses = append(courses, crs)
	}

	ordering = core.AllowedOrderings(ordering, courseOrderingFields...)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "title", Ascending: true}}
	}
	sort.SliceStable(courses, func(i, j int) bool {
		for _, ord := range ordering {
			a, b := orderingValue(courses[i], ord.Field), orderingValue(courses[j], ord.Field)
			if a == b {
				continue
			}
			if ord.Ascending {
				return a < b
			}
			return a > b
		}
		return courses[i].ID < courses[j].ID
	})
	return courses, nil
}

func orderingValue(crs course.RawCourse, field string) string {
	switch field {
	case "title":
		return strings.ToLower(crs.Title)
	case "instructor":
		return strings.ToLower(crs.Instructor)
	}
	return crs.ID
}

func (repo *courseRepository) FetchCourse(_ context.Context, id string) (course.RawCourse, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.get(id)
}

func (repo *courseRepository) PersistCourseModules(_ context.Context, id string, modules []course.Module) (course.RawCourse, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs, err := repo.get(id)
	if err != nil {
		return course.RawCourse{}, err
	}
	crs.Modules = modules
	return repo.put(crs)
}

func (repo *courseRepository) PersistCourseField(_ context.Context, id string, field course.Field, value interface{}) (course.RawCourse, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs, err := repo.get(id)
	if err != nil {
		return course.RawCourse{}, err
	}

	var ok bool
	switch field {
	case course.FieldCompletionDate:
		crs.CompletionDate, ok = value.(string)
	case course.FieldEnrolled:
		crs.Enrolled, ok = value.(bool)
	}
	if !ok {
		return course.RawCourse{}, errors.Errorf("invalid value %v for course field %q", value, field)
	}
	return repo.put(crs)
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
