package main

import (
	"context"
	"fmt"

	"github.com/lyceumacademy/lyceum/core/course"
)

// addCourse creates a course.Course with one module per title (or the default one).
func (cli *commandLine) addCourse(nc course.NewCourse, modules []string) error {
	for _, m := range modules {
		nc.Modules = append(nc.Modules, course.NewModule{Title: m})
	}

	crs, err := cli.courseSvc.Create(context.Background(), nc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created course %q with %d module(s)\n", crs.ID, len(crs.Modules))
	return nil
}
