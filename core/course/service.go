package course

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/lyceumacademy/lyceum/core"
)

var (
	// errors
	ErrNotFound       = errors.New("course not found")
	ErrModuleNotFound = errors.New("module not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrCourseExists   = errors.New("a course with this title already exists")
	ErrNotQuiz        = errors.New("lesson is not a quiz")
	ErrEmptyQuiz      = errors.New("quiz has no questions")
)

// IsNotFound reports whether err (or its cause) is one of the course, module or lesson not found errors.
func IsNotFound(err error) bool {
	switch errors.Cause(err) {
	case ErrNotFound, ErrModuleNotFound, ErrLessonNotFound:
		return true
	}
	return false
}

type (
	// Repository stores whole course documents. Modules are persisted as one value;
	// implementations never merge nested collections.
	Repository interface {
		CreateCourse(ctx context.Context, crs RawCourse) (RawCourse, error)
		// QueryCourses applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Course.Title or Course.Instructor.
		QueryCourses(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]RawCourse, error)
		FetchCourse(ctx context.Context, id string) (RawCourse, error)
		PersistCourseModules(ctx context.Context, id string, modules []Module) (RawCourse, error)
		PersistCourseField(ctx context.Context, id string, field Field, value interface{}) (RawCourse, error)
		DeleteCourse(ctx context.Context, id string) error
	}

	Service struct {
		repo        Repository
		validate    *validator.Validate
		events      Publisher
		logger      core.Logger
		passPercent int
	}
)

func NewService(conf *core.Config, repo Repository, validate *validator.Validate, events Publisher, logger core.Logger) *Service {
	passPercent := conf.Course.QuizPassPercent
	if passPercent <= 0 || passPercent > 100 {
		passPercent = DefaultPassPercent
	}
	return &Service{
		repo:        repo,
		validate:    validate,
		events:      events,
		logger:      logger,
		passPercent: passPercent,
	}
}

func (svc *Service) PassPercent() int { return svc.passPercent }

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}

	mods := make([]Module, 0, len(nc.Modules))
	for _, nm := range nc.Modules {
		mods = append(mods, Module{ID: NewID("mod"), Title: nm.Title, Lessons: []Lesson{}})
	}
	if len(mods) == 0 {
		mods = append(mods, Module{ID: NewID("mod"), Title: defaultModuleTitle, Lessons: []Lesson{}})
	}

	raw, err := svc.repo.CreateCourse(ctx, RawCourse{
		ID:          core.Slugify(nc.Title),
		Title:       nc.Title,
		Instructor:  nc.Instructor,
		Description: nc.Description,
		Thumbnail:   nc.Thumbnail,
		Modules:     mods,
	})
	if err != nil {
		if errors.Cause(err) == ErrCourseExists {
			return Course{}, core.NewValidationError(err, core.FieldError{Field: "title", Error: err.Error()})
		}
		return Course{}, err
	}
	crs := Sanitize(raw)
	publish(ctx, svc.events, svc.logger, EventCourseUpdated, crs)
	return crs, nil
}

func (svc *Service) QueryAll(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Course, error) {
	filter.Search = core.CleanString(filter.Search)
	raws, err := svc.repo.QueryCourses(ctx, filter, ordering)
	if err != nil {
		return nil, err
	}
	courses := make([]Course, 0, len(raws))
	for _, raw := range raws {
		courses = append(courses, Sanitize(raw))
	}
	return courses, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Course, error) {
	raw, err := svc.repo.FetchCourse(ctx, id)
	if err != nil {
		return Course{}, err
	}
	return Sanitize(raw), nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCourse(ctx, id)
}

// Enroll marks the learner as enrolled in the course.
func (svc *Service) Enroll(ctx context.Context, id string) (Course, error) {
	raw, err := svc.repo.PersistCourseField(ctx, id, FieldEnrolled, true)
	if err != nil {
		return Course{}, err
	}
	crs := Sanitize(raw)
	publish(ctx, svc.events, svc.logger, EventCourseUpdated, crs)
	return crs, nil
}

// updateModules runs one fetch -> modify -> persist cycle on the course's module sequence.
// fn works on a private sanitized copy and may modify it in place.
func (svc *Service) updateModules(ctx context.Context, courseID string, fn func(crs *Course) error) (Course, error) {
	raw, err := svc.repo.FetchCourse(ctx, courseID)
	if err != nil {
		return Course{}, err
	}
	crs := Sanitize(raw)
	if err := fn(&crs); err != nil {
		return Course{}, err
	}

	raw, err = svc.repo.PersistCourseModules(ctx, courseID, crs.Modules)
	if err != nil {
		return Course{}, err
	}
	crs = Sanitize(raw)
	publish(ctx, svc.events, svc.logger, EventCourseUpdated, crs)
	return crs, nil
}

func (svc *Service) AddModule(ctx context.Context, courseID string, nm NewModule) (Course, error) {
	if err := nm.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		crs.Modules = append(crs.Modules, Module{ID: NewID("mod"), Title: nm.Title, Lessons: []Lesson{}})
		return nil
	})
}

// UpdateModule renames a module. An unknown module leaves the document unchanged.
func (svc *Service) UpdateModule(ctx context.Context, courseID, moduleID string, um UpdateModule) (Course, error) {
	if err := um.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		if i := findModule(crs.Modules, moduleID); i >= 0 {
			crs.Modules[i].Title = um.Title
		}
		return nil
	})
}

// DeleteModule removes a module with all its lessons. An unknown module leaves the document unchanged.
func (svc *Service) DeleteModule(ctx context.Context, courseID, moduleID string) (Course, error) {
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		mods := crs.Modules[:0]
		for _, mod := range crs.Modules {
			if mod.ID != moduleID {
				mods = append(mods, mod)
			}
		}
		crs.Modules = mods
		return nil
	})
}

func (svc *Service) AddLesson(ctx context.Context, courseID, moduleID string, nl NewLesson) (Course, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		i := findModule(crs.Modules, moduleID)
		if i < 0 {
			return ErrModuleNotFound
		}
		crs.Modules[i].Lessons = append(crs.Modules[i].Lessons, nl.lesson())
		return nil
	})
}

// UpdateLesson merges the set fields of ul into the lesson. An unknown lesson leaves the document unchanged.
func (svc *Service) UpdateLesson(ctx context.Context, courseID, moduleID, lessonID string, ul UpdateLesson) (Course, error) {
	if err := ul.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		i := findModule(crs.Modules, moduleID)
		if i < 0 {
			return nil
		}
		if j := findLesson(crs.Modules[i].Lessons, lessonID); j >= 0 {
			crs.Modules[i].Lessons[j] = ul.apply(crs.Modules[i].Lessons[j])
		}
		return nil
	})
}

// DeleteLesson removes a lesson. An unknown module or lesson leaves the document unchanged.
func (svc *Service) DeleteLesson(ctx context.Context, courseID, moduleID, lessonID string) (Course, error) {
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		i := findModule(crs.Modules, moduleID)
		if i < 0 {
			return nil
		}
		lessons := crs.Modules[i].Lessons[:0]
		for _, lsn := range crs.Modules[i].Lessons {
			if lsn.ID != lessonID {
				lessons = append(lessons, lsn)
			}
		}
		crs.Modules[i].Lessons = lessons
		return nil
	})
}

// SetLessonCompletion persists the lesson's completed flag and returns the updated lesson & course.
// It does not decide whether the whole course is complete; see Tracker.
func (svc *Service) SetLessonCompletion(ctx context.Context, courseID, moduleID, lessonID string, completed bool) (Lesson, Course, error) {
	return svc.setLessonCompletion(ctx, courseID, moduleID, lessonID, func(bool) bool { return completed })
}

// ToggleLessonCompletion flips the lesson's completed flag and returns its new value.
func (svc *Service) ToggleLessonCompletion(ctx context.Context, courseID, moduleID, lessonID string) (bool, Course, error) {
	lsn, crs, err := svc.setLessonCompletion(ctx, courseID, moduleID, lessonID, func(curr bool) bool { return !curr })
	if err != nil {
		return false, Course{}, err
	}
	return lsn.Completed, crs, nil
}

func (svc *Service) setLessonCompletion(ctx context.Context, courseID, moduleID, lessonID string, next func(curr bool) bool) (Lesson, Course, error) {
	var lsn Lesson
	crs, err := svc.updateModules(ctx, courseID, func(crs *Course) error {
		i, j, err := locateLesson(*crs, moduleID, lessonID)
		if err != nil {
			return err
		}
		crs.Modules[i].Lessons[j].Completed = next(crs.Modules[i].Lessons[j].Completed)
		return nil
	})
	if err != nil {
		return Lesson{}, Course{}, err
	}

	// read back from the persisted document
	if i, j, err := locateLesson(crs, moduleID, lessonID); err == nil {
		lsn = crs.Modules[i].Lessons[j]
	}
	return lsn, crs, nil
}

func (svc *Service) AddQuestion(ctx context.Context, courseID, moduleID, lessonID string, nq NewQuestion) (Course, error) {
	if err := nq.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		i, j, err := locateLesson(*crs, moduleID, lessonID)
		if err != nil {
			return err
		}
		lsn := &crs.Modules[i].Lessons[j]
		if lsn.Kind != KindQuiz {
			return core.NewValidationError(ErrNotQuiz, core.FieldError{Field: "type", Error: ErrNotQuiz.Error()})
		}
		lsn.Questions = append(lsn.Questions, nq.question())
		return nil
	})
}

// UpdateQuestion merges the set fields of uq into the question. An unknown question leaves the document unchanged.
func (svc *Service) UpdateQuestion(ctx context.Context, courseID, moduleID, lessonID, questionID string, uq UpdateQuestion) (Course, error) {
	if err := uq.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		i, j, err := locateLesson(*crs, moduleID, lessonID)
		if err != nil {
			return err
		}
		questions := crs.Modules[i].Lessons[j].Questions
		k := findQuestion(questions, questionID)
		if k < 0 {
			return nil
		}
		q := uq.apply(questions[k])
		if err := validateMerged(q); err != nil {
			return err
		}
		questions[k] = q
		return nil
	})
}

// DeleteQuestion removes a question. An unknown question leaves the document unchanged.
func (svc *Service) DeleteQuestion(ctx context.Context, courseID, moduleID, lessonID, questionID string) (Course, error) {
	return svc.updateModules(ctx, courseID, func(crs *Course) error {
		i, j, err := locateLesson(*crs, moduleID, lessonID)
		if err != nil {
			return err
		}
		lsn := &crs.Modules[i].Lessons[j]
		questions := lsn.Questions[:0]
		for _, q := range lsn.Questions {
			if q.ID != questionID {
				questions = append(questions, q)
			}
		}
		lsn.Questions = questions
		return nil
	})
}
