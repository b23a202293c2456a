package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/query"
)

func (cli *commandLine) export(ctx context.Context, domain string, req query.Request) error {
	var (
		data []byte
		err  error
	)
	switch domain {
	case "students":
		data, err = cli.app.Students.Export(ctx, req)
	case "employees":
		data, err = cli.app.Employees.Export(ctx, req)
	case "stock":
		data, err = cli.app.Stock.Export(ctx, req)
	case "payments":
		data, err = cli.app.Investment.ExportPayments(ctx, req)
	default:
		return fmt.Errorf("%q: no such domain", domain)
	}
	if err != nil {
		return errors.Wrapf(err, "exporting %s", domain)
	}
	_, err = cli.out.Write(data)
	return err
}
