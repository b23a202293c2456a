package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/route"
)

func (cli *commandLine) summary(ctx context.Context) error {
	ov, err := cli.app.Dashboard.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Students\t%d total\t%d active (%.1f%%)\t%.2f outstanding\n",
		ov.Students.Total, ov.Students.Active, ov.Students.ActivePercent, ov.Students.TuitionOutstanding)
	fmt.Fprintf(w, "Employees\t%d total\t%d active\t%.2f payroll\n",
		ov.Employees.Total, ov.Employees.Active, ov.Employees.Payroll)
	fmt.Fprintf(w, "Stock\t%d products\t%d low stock\t%.2f value\n",
		ov.Stock.Products, ov.Stock.LowStock, ov.Stock.InventoryValue)
	fmt.Fprintf(w, "Investment\t%.2f income\t%.2f outcome\t%.2f profit\n",
		ov.Investment.Income, ov.Investment.Outcome, ov.Profit)
	return w.Flush()
}

func (cli *commandLine) routes() error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	for _, r := range route.All() {
		access := "admin"
		if r.Public {
			access = "public"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, route.WindowTitle(r.Path, cli.app.Conf.AppName), access)
	}
	return w.Flush()
}
