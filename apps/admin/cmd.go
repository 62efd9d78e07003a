package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/lead"
)

var (
	isTerminalFunc  = term.IsTerminal // mockable
	readConfirmFunc = readConfirm     // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("import aborted")
)

type commandLine struct {
	db         *sqlx.DB
	catalogSvc catalog.Service
	leadSvc    lead.Service
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run goose COMMAND (up, up-by-one, up-to, down, down-to, redo, reset, status, version, fix)")
	fmt.Fprintln(cli.out, "  import -file FILE [-yes] - replace the whole catalog with FILE (.yaml, .yml or .json)")
	fmt.Fprintln(cli.out, "  leads [-type TYPE] [-since RFC3339] [-limit N] - list leads, newest first")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importFile := importCmd.String("file", "", "The catalog file.")
	importYes := importCmd.Bool("yes", false, "Do not ask for confirmation.")

	leadsCmd := flag.NewFlagSet("leads", flag.ContinueOnError)
	leadsType := leadsCmd.String("type", "", fmt.Sprintf("Lead type, one of %q.", lead.AllTypes))
	leadsSince := leadsCmd.String("since", "", "Only leads created at or after this RFC3339 time.")
	leadsLimit := leadsCmd.Int("limit", 50, "Maximum number of leads (0 = no limit).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importCatalog(*importFile, *importYes)
	case "leads":
		if err := leadsCmd.Parse(args[2:]); err != nil {
			return err
		}
		filter := lead.QueryFilter{Type: *leadsType, Limit: *leadsLimit}
		if *leadsSince != "" {
			since, err := time.Parse(time.RFC3339, *leadsSince)
			if err != nil {
				return fmt.Errorf("invalid -since: %w", err)
			}
			filter.Since = since
		}
		return cli.listLeads(filter)
	default:
		cli.printUsage()
		return errHelp
	}
}

// importCatalog validates the file then replaces the stored catalog.
func (cli *commandLine) importCatalog(path string, yes bool) error {
	cat, err := catalog.ReadFile(path)
	if err != nil {
		return err
	}
	if err = cat.Validate(cli.validate, cli.translator); err != nil {
		if vErr, ok := core.IsValidationError(err); ok {
			for _, fe := range vErr.Fields {
				fmt.Fprintf(cli.out, "  %s: %s\n", fe.Field, fe.Error)
			}
		}
		return err
	}

	fmt.Fprintf(cli.out, "%d categories, %d themes, %d formations\n", len(cat.Categories), len(cat.Themes), len(cat.Formations))
	if !yes && isTerminalFunc(int(os.Stdin.Fd())) {
		ok, err := readConfirmFunc("The current catalog will be replaced. Continue? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	if err = cli.catalogSvc.Import(context.Background(), cat); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "catalog imported")
	return nil
}

func (cli *commandLine) listLeads(filter lead.QueryFilter) error {
	leads, err := cli.leadSvc.Query(context.Background(), filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED AT\tTYPE\tNAME\tEMAIL\tPHONE\tFORMATION")
	for _, l := range leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.CreatedAt.Format(time.RFC3339), l.Type, l.FullName, l.Email, l.Phone, l.FormationCode)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d lead(s)\n", len(leads))
	return nil
}

func readConfirm(prompt string) (bool, error) {
	fmt.Print(prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
