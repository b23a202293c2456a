package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/masomo-dashboard/apps/di"
	"github.com/trezcool/masomo-dashboard/core/query"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	app *di.Container
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  summary - print the dashboard overview")
	fmt.Fprintln(cli.out, "  export -domain students|employees|stock|payments [-search TERM] [-filter KEY=VALUE]... [-ordering FIELDS] - write a CSV export")
	fmt.Fprintln(cli.out, "  routes - list the dashboard pages")
	fmt.Fprintln(cli.out, "  login -email EMAIL - sign in and print an API token")
}

// filterFlag collects repeated -filter KEY=VALUE pairs.
type filterFlag map[string]string

func (f filterFlag) String() string {
	pairs := make([]string, 0, len(f))
	for k, v := range f {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (f filterFlag) Set(val string) error {
	k, v, ok := strings.Cut(val, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("filter must be of form KEY=VALUE (got %q)", val)
	}
	f[strings.TrimSpace(k)] = v
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportDomain := exportCmd.String("domain", "", "The exported collection: students, employees, stock or payments.")
	exportSearch := exportCmd.String("search", "", "Keep records containing this term.")
	exportOrdering := exportCmd.String("ordering", "", "Comma separated fields, prefixed with - for descending order.")
	exportFilters := make(filterFlag)
	exportCmd.Var(exportFilters, "filter", "A KEY=VALUE category filter. Can be repeated.")

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The email to sign in with. The password will be prompted next.")

	switch args[1] {
	case "summary":
		return cli.summary(ctx)
	case "routes":
		return cli.routes()
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportDomain == "" {
			exportCmd.Usage()
			return errHelp
		}
		req := query.Request{
			Criteria: query.Criteria{Search: *exportSearch, Filters: exportFilters},
			Ordering: query.ParseOrdering(*exportOrdering),
		}
		req.Criteria.Clean()
		return cli.export(ctx, *exportDomain, req)
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *loginEmail, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
