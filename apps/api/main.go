package main

import (
	"context"
	"expvar"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/institut/apps/api/echo"
	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/lead"
	"github.com/trezcool/institut/core/reservation"
	emailsvc "github.com/trezcool/institut/services/email"
	logsvc "github.com/trezcool/institut/services/logger"
	"github.com/trezcool/institut/storage/database"
	inmemdb "github.com/trezcool/institut/storage/database/inmem"
	sqlxrepos "github.com/trezcool/institut/storage/database/sqlx"
)

func main() {
	inmem := flag.Bool("inmem", false, "use in-memory storage instead of PostgreSQL")
	seed := flag.String("seed", "", "catalog file (.yaml|.json) loaded at startup with -inmem")
	flag.Parse()

	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	std := logsvc.NewStdLogger(conf)

	// set up loggers
	logger := logsvc.NewRollbarLogger(std, "API", conf)
	logger.Enable(!conf.Debug)
	dbLogger := logsvc.NewRollbarLogger(std, "DB", conf)

	// set up storage
	var (
		catRepo  catalog.Repository
		leadRepo lead.Repository
	)
	if *inmem {
		db := inmemdb.Open()
		catRepo = inmemdb.NewCatalogRepository(db)
		leadRepo = inmemdb.NewLeadRepository(db)
	} else {
		db, err := setUpDB(conf)
		if err != nil {
			dbLogger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				dbLogger.Error("Failed to close", err)
			}
		}()
		catRepo = sqlxrepos.NewCatalogRepository(db)
		leadRepo = sqlxrepos.NewLeadRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	catalogSvc := catalog.NewService(catRepo)
	leadSvc := lead.NewService(leadRepo, mailSvc, conf, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	reservation.InitValidators(validate, translator)

	if *seed != "" {
		if err := seedCatalog(catalogSvc, *seed, validate, translator); err != nil {
			logger.Fatal(fmt.Sprintf("seeding catalog: %v", err), err)
		}
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		CatalogSvc: catalogSvc,
		LeadSvc:    leadSvc,
		Validate:   validate,
		Translator: translator,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
				os.Exit(1)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(context.Background(), conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func seedCatalog(svc catalog.Service, path string, validate *validator.Validate, translator ut.Translator) error {
	cat, err := catalog.ReadFile(path)
	if err != nil {
		return err
	}
	if err = cat.Validate(validate, translator); err != nil {
		return err
	}
	return svc.Import(context.Background(), cat)
}
