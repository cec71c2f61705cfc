package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

type courseApi struct {
	svc     *course.Service
	tracker *course.Tracker
	mailSvc core.EmailService
	logger  core.Logger
}

func registerCourseAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *course.Service,
	tracker *course.Tracker,
	mailSvc core.EmailService,
	logger core.Logger,
) {
	api := courseApi{
		svc:     svc,
		tracker: tracker,
		mailSvc: mailSvc,
		logger:  logger,
	}
	staff := roleMiddleware(curriculumRoles...)

	cg := g.Group("/courses", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, staff)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy, roleMiddleware(RoleAdmin))
	dg.GET("/progress", api.progress)
	dg.POST("/enroll", api.enroll)

	mg := dg.Group("/modules")
	mg.POST("", api.createModule, staff)
	mg.PUT("/:moduleId", api.updateModule, staff)
	mg.DELETE("/:moduleId", api.destroyModule, staff)

	lg := mg.Group("/:moduleId/lessons")
	lg.POST("", api.createLesson, staff)
	lg.PATCH("/:lessonId", api.updateLesson, staff)
	lg.DELETE("/:lessonId", api.destroyLesson, staff)
	lg.POST("/:lessonId/toggle-completion", api.toggleCompletion)
	lg.POST("/:lessonId/quiz", api.submitQuiz)

	qg := lg.Group("/:lessonId/questions")
	qg.POST("", api.createQuestion, staff)
	qg.PUT("/:questionId", api.updateQuestion, staff)
	qg.DELETE("/:questionId", api.destroyQuestion, staff)
}

type (
	ProgressResponse struct {
		CourseID       string `json:"courseId"`
		Progress       int    `json:"progress"` // %
		TotalLessons   int    `json:"totalLessons"`
		CompletionDate string `json:"completionDate,omitempty"`
	}

	ToggleCompletionResponse struct {
		Completed bool          `json:"completed"`
		Course    course.Course `json:"course"`
	}

	QuizSubmission struct {
		Answers map[string]int `json:"answers"` // {questionID: option index}
	}
)

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	courses, err := api.svc.QueryAll(ctx.Request().Context(), bindCourseFilter(ctx), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) progress(ctx echo.Context) error {
	crs, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, ProgressResponse{
		CourseID:       crs.ID,
		Progress:       course.Progress(crs),
		TotalLessons:   crs.LessonCount(),
		CompletionDate: crs.CompletionDate,
	})
}

func (api *courseApi) enroll(ctx echo.Context) error {
	crs, err := api.svc.Enroll(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) createModule(ctx echo.Context) error {
	var data course.NewModule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewModule")
	}

	crs, err := api.svc.AddModule(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "adding module")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) updateModule(ctx echo.Context) error {
	var data course.UpdateModule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateModule")
	}

	crs, err := api.svc.UpdateModule(ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), data)
	if err != nil {
		return errors.Wrap(err, "updating module")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroyModule(ctx echo.Context) error {
	crs, err := api.svc.DeleteModule(ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"))
	if err != nil {
		return errors.Wrap(err, "deleting module")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) createLesson(ctx echo.Context) error {
	var data course.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}

	crs, err := api.svc.AddLesson(ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), data)
	if err != nil {
		return errors.Wrap(err, "adding lesson")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) updateLesson(ctx echo.Context) error {
	var data course.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}

	crs, err := api.svc.UpdateLesson(
		ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), ctx.Param("lessonId"), data,
	)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroyLesson(ctx echo.Context) error {
	crs, err := api.svc.DeleteLesson(ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), ctx.Param("lessonId"))
	if err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) toggleCompletion(ctx echo.Context) error {
	completed, crs, err := api.svc.ToggleLessonCompletion(
		ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), ctx.Param("lessonId"),
	)
	if err != nil {
		return errors.Wrap(err, "toggling lesson completion")
	}

	crs, err = api.trackCompletion(ctx, crs)
	if err != nil {
		return errors.Wrap(err, "tracking course completion")
	}
	return ctx.JSON(http.StatusOK, ToggleCompletionResponse{Completed: completed, Course: crs})
}

func (api *courseApi) submitQuiz(ctx echo.Context) error {
	var data QuizSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuizSubmission")
	}

	res, err := api.svc.SubmitQuiz(
		ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), ctx.Param("lessonId"), data.Answers,
	)
	if err != nil {
		return errors.Wrap(err, "submitting quiz")
	}

	if res.Completed {
		res.Course, err = api.trackCompletion(ctx, res.Course)
		if err != nil {
			return errors.Wrap(err, "tracking course completion")
		}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *courseApi) createQuestion(ctx echo.Context) error {
	var data course.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}

	crs, err := api.svc.AddQuestion(
		ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), ctx.Param("lessonId"), data,
	)
	if err != nil {
		return errors.Wrap(err, "adding question")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) updateQuestion(ctx echo.Context) error {
	var data course.UpdateQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuestion")
	}

	crs, err := api.svc.UpdateQuestion(
		ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), ctx.Param("lessonId"), ctx.Param("questionId"), data,
	)
	if err != nil {
		return errors.Wrap(err, "updating question")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroyQuestion(ctx echo.Context) error {
	crs, err := api.svc.DeleteQuestion(
		ctx.Request().Context(), ctx.Param("id"), ctx.Param("moduleId"), ctx.Param("lessonId"), ctx.Param("questionId"),
	)
	if err != nil {
		return errors.Wrap(err, "deleting question")
	}
	return ctx.JSON(http.StatusOK, crs)
}

// trackCompletion runs the completion tracker and, when it just completed the course,
// emails the certificate to the authenticated learner.
func (api *courseApi) trackCompletion(ctx echo.Context, crs course.Course) (course.Course, error) {
	crs, marked, err := api.tracker.MaybeMarkComplete(ctx.Request().Context(), crs)
	if err != nil || !marked {
		return crs, err
	}

	claims, err := getContextClaims(ctx)
	if err != nil || claims.Email == "" {
		api.logger.Warn(fmt.Sprintf("course %q completed by an unknown learner: no certificate sent", crs.ID))
		return crs, nil
	}
	api.mailSvc.SendMessages(course.NewCertificateMessage(crs, claims.Address()))
	return crs, nil
}
