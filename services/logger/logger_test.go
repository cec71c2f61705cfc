package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lyceumacademy/lyceum/core"
)

func TestSplitArgs(t *testing.T) {
	err := errors.New("boom")
	ada := core.Person{ID: "1", Name: "Ada"}

	person, rest := splitArgs([]interface{}{err, ada, core.Person{ID: "2"}, "x"})
	require.NotNil(t, person)
	assert.Equal(t, ada, *person)
	assert.Equal(t, []interface{}{err, "x"}, rest)

	person, rest = splitArgs(nil)
	assert.Nil(t, person)
	assert.Empty(t, rest)
}

func TestZapLogger(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	logger := newZapLogger(zap.New(obsCore))

	logger.Error("saving course", errors.New("boom"), map[string]interface{}{"course": "go"}, personArg())
	logger.Info("started")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "go", ctx["course"])
	assert.Contains(t, ctx, "person")
	assert.Equal(t, "started", entries[1].Message)
}

func personArg() core.Person { return core.Person{ID: "1", Email: "ada@lyceum.test"} }
