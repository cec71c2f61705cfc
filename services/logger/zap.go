package logsvc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lyceumacademy/lyceum/core"
)

// ZapLogger is the structured console logger used when Debug is on.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(conf *core.Config, name string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if conf.Debug || conf.TestMode {
		cfg = zap.NewDevelopmentConfig()
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return newZapLogger(zl.Named(name)), nil
}

func newZapLogger(zl *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: zl.Sugar()}
}

func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}

// fields turns our log args into zap key/value pairs.
func fields(args []interface{}) []interface{} {
	person, rest := splitArgs(args)
	kvs := make([]interface{}, 0, 2*len(args))
	if person != nil {
		kvs = append(kvs, "person", map[string]string{"id": person.ID, "name": person.Name, "email": person.Email})
	}
	for i, arg := range rest {
		switch v := arg.(type) {
		case error:
			kvs = append(kvs, zap.Error(v))
		case map[string]interface{}:
			for k, val := range v {
				kvs = append(kvs, k, val)
			}
		default:
			kvs = append(kvs, fmt.Sprintf("arg%d", i), v)
		}
	}
	return kvs
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugw(msg, fields(args)...) }
func (l *ZapLogger) Info(msg string, args ...interface{})  { l.sugar.Infow(msg, fields(args)...) }
func (l *ZapLogger) Warn(msg string, args ...interface{})  { l.sugar.Warnw(msg, fields(args)...) }
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorw(msg, fields(args)...) }
func (l *ZapLogger) Fatal(msg string, args ...interface{}) { l.sugar.Fatalw(msg, fields(args)...) }
