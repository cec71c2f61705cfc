package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf      *core.Config
	db        *sql.DB
	courseSvc *course.Service
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, redo, ...)")
	fmt.Fprintln(cli.out, "  addcourse -title TITLE [-instructor NAME] [-description TEXT] [-thumbnail URL] [-modules A,B] - create a course")
	fmt.Fprintln(cli.out, "  token -email EMAIL [-name NAME] [-role ROLE] - issue an API token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addCourseCmd := flag.NewFlagSet("addcourse", flag.ContinueOnError)
	addCourseCmd.SetOutput(cli.out)
	addCourseTitle := addCourseCmd.String("title", "", "The course title; its slug becomes the course ID.")
	addCourseInstructor := addCourseCmd.String("instructor", "", "The instructor's name.")
	addCourseDescription := addCourseCmd.String("description", "", "A short description.")
	addCourseThumbnail := addCourseCmd.String("thumbnail", "", "The thumbnail URL.")
	addCourseModules := addCourseCmd.String("modules", "", "Comma-separated module titles.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	tokenEmail := tokenCmd.String("email", "", "The learner's email.")
	tokenName := tokenCmd.String("name", "", "The learner's name.")
	tokenRole := tokenCmd.String("role", "student", "One of admin, staff, student.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addcourse":
		if err := addCourseCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addCourseTitle == "" {
			addCourseCmd.Usage()
			return errHelp
		}
		return cli.addCourse(course.NewCourse{
			Title:       *addCourseTitle,
			Instructor:  *addCourseInstructor,
			Description: *addCourseDescription,
			Thumbnail:   *addCourseThumbnail,
		}, splitList(*addCourseModules))
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenEmail == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenEmail, *tokenName, *tokenRole)
	default:
		cli.printUsage()
		return errHelp
	}
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
