package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/lyceumacademy/lyceum/apps/api/echo"
	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
	"github.com/lyceumacademy/lyceum/storage/database/inmem"
	"github.com/lyceumacademy/lyceum/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	conf := testutil.NewConfig()
	repo := inmemdb.NewCourseRepository(inmemdb.Open())
	out := new(bytes.Buffer)

	return &commandLine{
		conf:      conf,
		courseSvc: course.NewService(conf, repo, testutil.NewValidator(), new(testutil.Publisher), new(testutil.Logger)),
		out:       out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	orig := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = orig })
	gooseRunFunc = func(db *sql.DB, conf *core.Config, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "course_tags", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
}

func Test_commandLine_addCourse(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no title", args: []string{"addcourse", "-instructor", "Rob"}, wantErr: errHelp},
		{name: "create", args: []string{"addcourse", "-title", "Intro to Go", "-instructor", "Rob", "-modules", "Basics, ,Concurrency"}},
		{name: "duplicate", args: []string{"addcourse", "-title", "intro to go"}, wantErrStr: "a course with this title already exists"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	assert.Contains(t, out.String(), `created course "intro-to-go" with 2 module(s)`)

	crs, err := cli.courseSvc.Get(context.Background(), "intro-to-go")
	require.NoError(t, err)
	assert.Equal(t, "Rob", crs.Instructor)
	require.Len(t, crs.Modules, 2)
	assert.Equal(t, "Basics", crs.Modules[0].Title)
	assert.Equal(t, "Concurrency", crs.Modules[1].Title)
}

func Test_commandLine_token(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no email", args: []string{"token", "-name", "Ada"}, wantErr: errHelp},
		{name: "unknown role", args: []string{"token", "-email", "ada@lyceum.test", "-role", "guest"}, wantErrStr: "\"guest\": no such role"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	out.Reset()
	require.NoError(t, cli.run([]string{"admin", "token", "-email", " Ada@Lyceum.test ", "-name", "Ada", "-role", "staff"}))

	claims := new(echoapi.Claims)
	_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cli.conf.SecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@lyceum.test", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, echoapi.RoleStaff, claims.Role)
}
