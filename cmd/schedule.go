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

type scheduleCmd struct {
	principal float64
	rate      float64
	years     int
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the loan amortization schedule" }
func (*scheduleCmd) Usage() string {
	return `dcfa schedule [-principal <amount>] [-rate <ratio>] [-years <n>]

  Displays the amortization schedule of the scenario's loan, rolled up by
  year: payments and interest summed, the outstanding balance at the year's
  close. The flags override the scenario's loan terms.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 0, "Loan principal (defaults to the scenario's)")
	f.Float64Var(&c.rate, "rate", 0, "Nominal annual rate as a ratio, e.g. 0.03 (defaults to the scenario's)")
	f.IntVar(&c.years, "years", 0, "Amortization term in years (defaults to the scenario's)")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadScenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	terms := s.Loan
	if c.principal != 0 {
		terms.Principal = c.principal
	}
	if c.rate != 0 {
		terms.AnnualRate = c.rate
	}
	if c.years != 0 {
		terms.Years = c.years
	}

	a, err := dcf.Amortize(terms, s.Start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	// Payments and interest are flows, the balance is a stock: two rollups,
	// one table. Summing a balance over a year would be meaningless.
	flows := dcf.Combine(a.Payment, a.Interest).AnnualizeFlow(0)
	balance := dcf.Combine(a.Balance).AnnualizeStock(0)

	md := renderer.ScheduleMarkdown(terms, flows, s.Currency) +
		renderer.TableMarkdown("Outstanding Balance", balance, s.Currency)
	printMarkdown(md)
	return subcommands.ExitSuccess
}
