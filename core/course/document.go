package course

func findModule(mods []Module, id string) int {
	for i, mod := range mods {
		if mod.ID == id {
			return i
		}
	}
	return -1
}

func findLesson(lessons []Lesson, id string) int {
	for i, lsn := range lessons {
		if lsn.ID == id {
			return i
		}
	}
	return -1
}

func findQuestion(questions []Question, id string) int {
	for i, q := range questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// locateLesson returns the module & lesson indexes of lessonID inside moduleID.
func locateLesson(crs Course, moduleID, lessonID string) (int, int, error) {
	i := findModule(crs.Modules, moduleID)
	if i < 0 {
		return -1, -1, ErrModuleNotFound
	}
	j := findLesson(crs.Modules[i].Lessons, lessonID)
	if j < 0 {
		return -1, -1, ErrLessonNotFound
	}
	return i, j, nil
}

// FindLesson returns a copy of the lesson lessonID of module moduleID.
func (c Course) FindLesson(moduleID, lessonID string) (Lesson, error) {
	i, j, err := locateLesson(c, moduleID, lessonID)
	if err != nil {
		return Lesson{}, err
	}
	return sanitizeLesson(c.Modules[i].Lessons[j]), nil
}

func (nq NewQuestion) question() Question {
	return Question{
		ID:            NewID("q"),
		Text:          nq.Text,
		Options:       copyOptions(nq.Options),
		CorrectAnswer: nq.CorrectAnswer,
	}
}

func newQuestions(nqs []NewQuestion) []Question {
	questions := make([]Question, 0, len(nqs))
	for _, nq := range nqs {
		questions = append(questions, nq.question())
	}
	return questions
}

func (nl NewLesson) lesson() Lesson {
	lsn := Lesson{
		ID:        NewID("lesson"),
		Title:     nl.Title,
		Duration:  nl.Duration,
		Kind:      nl.Kind,
		Content:   nl.Content,
		Questions: []Question{},
	}
	if lsn.Duration == 0 {
		lsn.Duration = defaultLessonDuration
	}
	switch lsn.Kind {
	case KindVideo:
		lsn.VideoURL = nl.VideoURL
	case KindQuiz:
		lsn.Questions = newQuestions(nl.Questions)
	}
	return lsn
}

// apply returns lsn with every set field of ul merged in.
func (ul UpdateLesson) apply(lsn Lesson) Lesson {
	if ul.Title != nil {
		lsn.Title = *ul.Title
	}
	if ul.Kind != nil {
		lsn.Kind = *ul.Kind
	}
	if ul.Content != nil {
		lsn.Content = *ul.Content
	}
	if ul.Duration != nil {
		lsn.Duration = *ul.Duration
	}
	if ul.VideoURL != nil {
		lsn.VideoURL = *ul.VideoURL
	}
	if ul.Questions != nil {
		lsn.Questions = newQuestions(*ul.Questions)
	}
	return lsn
}

// apply returns q with every set field of uq merged in.
func (uq UpdateQuestion) apply(q Question) Question {
	if uq.Text != nil {
		q.Text = *uq.Text
	}
	if uq.Options != nil {
		q.Options = copyOptions(*uq.Options)
	}
	if uq.CorrectAnswer != nil {
		q.CorrectAnswer = *uq.CorrectAnswer
	}
	return q
}
