package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads "?ordering=-title,instructor" ("-" for descending).
func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// bindCourseFilter reads "?search=go&enrolled=true". An unparsable enrolled value is ignored.
func bindCourseFilter(ctx echo.Context) course.QueryFilter {
	filter := course.QueryFilter{Search: ctx.QueryParam("search")}
	if enrolled, err := strconv.ParseBool(ctx.QueryParam("enrolled")); err == nil {
		filter.Enrolled = &enrolled
	}
	return filter
}
