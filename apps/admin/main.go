package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
	eventsvc "github.com/lyceumacademy/lyceum/services/events"
	logsvc "github.com/lyceumacademy/lyceum/services/logger"
	"github.com/lyceumacademy/lyceum/storage/database"
	sqlxrepos "github.com/lyceumacademy/lyceum/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)

	// set up services
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)

	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(!conf.Debug)
	courseSvc := course.NewService(
		conf,
		sqlxrepos.NewCourseRepository(db),
		validate,
		eventsvc.NewConsolePublisher(appLogger),
		appLogger,
	)

	// start CLI
	cli := commandLine{
		conf:      conf,
		db:        db.DB,
		courseSvc: courseSvc,
		out:       os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
