package course

// Sanitize turns a stored document into a Course. It never fails: missing module, lesson and
// question sequences become empty ones and every other field passes through untouched.
// The result shares no slice with raw, so callers may modify either freely.
func Sanitize(raw RawCourse) Course {
	crs := Course(raw)
	crs.Modules = make([]Module, 0, len(raw.Modules))
	for _, mod := range raw.Modules {
		crs.Modules = append(crs.Modules, sanitizeModule(mod))
	}
	return crs
}

func sanitizeModule(mod Module) Module {
	lessons := make([]Lesson, 0, len(mod.Lessons))
	for _, lsn := range mod.Lessons {
		lessons = append(lessons, sanitizeLesson(lsn))
	}
	mod.Lessons = lessons
	return mod
}

func sanitizeLesson(lsn Lesson) Lesson {
	questions := make([]Question, 0, len(lsn.Questions))
	for _, q := range lsn.Questions {
		q.Options = copyOptions(q.Options)
		questions = append(questions, q)
	}
	lsn.Questions = questions
	return lsn
}

func copyOptions(opts []string) []string {
	if opts == nil {
		return nil
	}
	cp := make([]string, len(opts))
	copy(cp, opts)
	return cp
}
