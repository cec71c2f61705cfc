package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/lyceumacademy/lyceum/apps/api/echo"
	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
	"github.com/lyceumacademy/lyceum/storage/database/inmem"
	"github.com/lyceumacademy/lyceum/tests"
)

type testApp struct {
	conf   *core.Config
	server *Server
	repo   course.Repository
	events *testutil.Publisher
	mailer *testutil.Mailer
	logger *testutil.Logger
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		conf:   testutil.NewConfig(),
		repo:   inmemdb.NewCourseRepository(inmemdb.Open()),
		events: new(testutil.Publisher),
		mailer: new(testutil.Mailer),
		logger: new(testutil.Logger),
	}
	svc := course.NewService(app.conf, app.repo, testutil.NewValidator(), app.events, app.logger)
	tracker := course.NewTracker(app.repo, app.events, app.logger)
	app.server = NewServer(app.conf, app.logger, core.NewTranslator(), svc, tracker, app.mailer)
	t.Cleanup(func() { _ = app.server.Close() })
	return app
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     interface{}
	token    string
	wantCode int
}

func (app *testApp) token(t *testing.T, role string) string {
	t.Helper()
	claims := NewClaims(app.conf, role+"@lyceum.test", "Ada "+role, role)
	token, err := GenerateToken(app.conf, claims)
	require.NoError(t, err)
	return token
}

func (app *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) run(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestServer_home(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Lyceum Academy API!", rec.Body.String())
}
