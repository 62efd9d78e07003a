package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/lead"
	emailsvc "github.com/trezcool/institut/services/email"
	logsvc "github.com/trezcool/institut/services/logger"
	"github.com/trezcool/institut/storage/database"
	sqlxrepos "github.com/trezcool/institut/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger(conf), "ADMIN", conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:         db,
		catalogSvc: catalog.NewService(sqlxrepos.NewCatalogRepository(db)),
		leadSvc:    lead.NewService(sqlxrepos.NewLeadRepository(db), emailsvc.NewConsoleService(conf, logger), conf, logger),
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
