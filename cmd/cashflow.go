package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	dcf "github.com/karlp-asrs/nus-apartment"
	"github.com/karlp-asrs/nus-apartment/renderer"
)

type cashflowCmd struct {
	table string
}

func (*cashflowCmd) Name() string     { return "cashflow" }
func (*cashflowCmd) Synopsis() string { return "display one annual summary table of the scenario" }
func (*cashflowCmd) Usage() string {
	return `dcfa cashflow [-t <table>]

  Displays a single annual table of the analysis. Tables:
    operating  rent and operating expenses (default)
    total      operating plus equity outlay, renovation and debt service
    taxable    rent less expenses, mortgage interest and depreciation
    balance    house value, loan balance and owner equity
`
}

func (c *cashflowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.table, "t", "operating", "Table to display (operating, total, taxable, balance)")
}

// pickTable maps the flag value to a report table and its display title.
func pickTable(r *dcf.Report, name string) (string, *dcf.Table, error) {
	switch name {
	case "operating":
		return "Operating Cash Flow", r.OperatingCashFlow, nil
	case "total":
		return "Total Cash Flow", r.TotalCashFlow, nil
	case "taxable":
		return "Taxable Income", r.TaxableIncome, nil
	case "balance":
		return "Balance Sheet", r.BalanceSheet, nil
	default:
		return "", nil, fmt.Errorf("unknown table %q, want operating, total, taxable or balance", name)
	}
}

func (c *cashflowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadScenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	report, err := dcf.Analyze(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	title, table, err := pickTable(report, c.table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.TableMarkdown(title, table, s.Currency))
	return subcommands.ExitSuccess
}
