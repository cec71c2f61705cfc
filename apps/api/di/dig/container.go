package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	echoapi "github.com/lyceumacademy/lyceum/apps/api/echo"
	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
	emailsvc "github.com/lyceumacademy/lyceum/services/email"
	eventsvc "github.com/lyceumacademy/lyceum/services/events"
	logsvc "github.com/lyceumacademy/lyceum/services/logger"
	"github.com/lyceumacademy/lyceum/storage/database"
	sqlxrepos "github.com/lyceumacademy/lyceum/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// newLoggerNamed logs to the console through zap in DEV, and to rollbar otherwise.
func newLoggerNamed(conf *core.Config, name string, flags int) core.Logger {
	if conf.Debug {
		logger, err := logsvc.NewZapLogger(conf, name)
		if err == nil {
			return logger
		}
		log.Printf("falling back to the std logger: %v", err)
	}
	stdLogger := log.New(os.Stdout, name+" : ", flags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newLogger(conf *core.Config) core.Logger {
	return newLoggerNamed(conf, "API", log.LstdFlags)
}

func newDBLogger(conf *core.Config) core.Logger {
	return newLoggerNamed(conf, "DB", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db.DB, conf); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

// newRedisClient returns nil when no redis address is configured.
func newRedisClient(conf *core.Config, logger core.Logger) *redis.Client {
	if conf.Redis.Address == "" {
		return nil
	}
	rdb, err := eventsvc.NewRedisClient(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
	}
	return rdb
}

func newEventPublisher(conf *core.Config, rdb *redis.Client, logger core.Logger) course.Publisher {
	if rdb == nil {
		return eventsvc.NewConsolePublisher(logger)
	}
	return eventsvc.NewRedisPublisher(rdb, conf)
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newRedisClient))
	must(c.Provide(newEventPublisher))
	must(c.Provide(newEmailService))
	must(c.Provide(sqlxrepos.NewCourseRepository))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(course.NewService))
	must(c.Provide(course.NewTracker))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
