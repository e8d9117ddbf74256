package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/acadbase/academia/apps/api/echo"
	"github.com/acadbase/academia/core"
	"github.com/acadbase/academia/core/academics"
	"github.com/acadbase/academia/core/account"
	logsvc "github.com/acadbase/academia/services/logger"
	"github.com/acadbase/academia/storage/database"
	sqlxrepos "github.com/acadbase/academia/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.LoadConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewStdLogger(std, conf)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	errAndDie(std, database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()
	errAndDie(std, database.Ping(db))
	errAndDie(std, database.Migrate(db.DB))

	// set up services
	tokens := account.NewTokenIssuer(conf)
	accountSvc := account.NewService(sqlxrepos.NewAccountRepository(db), tokens)
	academicsSvc := academics.NewService(sqlxrepos.NewAcademicsRepository(db))

	validate, translator := core.NewValidator()

	app := echoapi.NewServer(&echoapi.Options{
		Conf:         conf,
		Logger:       logger,
		AccountSvc:   accountSvc,
		AcademicsSvc: academicsSvc,
		Tokens:       tokens,
		Validate:     validate,
		Translator:   translator,
	})

	// graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			std.Printf("shutdown error: %v", err)
		}
	}()

	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
