package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	dcf "github.com/karlp-asrs/nus-apartment"
)

type irrCmd struct {
	seriesFile string
}

func (*irrCmd) Name() string     { return "irr" }
func (*irrCmd) Synopsis() string { return "compute the internal rate of return" }
func (*irrCmd) Usage() string {
	return `dcfa irr [-f <series.jsonl>]

  Computes the annualized internal rate of return of the scenario. With -f,
  computes it over an ad hoc series instead ("-" for stdin), read as JSONL
  with one dated event per line:

    {"date": "2024-01-01", "amount": -100}
    {"date": "2025-07-01", "amount": 150}
`
}

func (c *irrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.seriesFile, "f", "", "Cash-flow series file (JSONL, \"-\" for stdin), instead of the scenario")
}

func (c *irrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rate, err := c.rate()
	if err != nil {
		switch {
		case errors.Is(err, dcf.ErrDegenerateCashFlow):
			fmt.Fprintf(os.Stderr, "Error: %v (the series needs at least one inflow and one outflow)\n", err)
		case errors.Is(err, dcf.ErrNoConvergence):
			fmt.Fprintf(os.Stderr, "Error: %v (the solver found no rate)\n", err)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	fmt.Println(dcf.Percent(rate))
	return subcommands.ExitSuccess
}

func (c *irrCmd) rate() (float64, error) {
	if c.seriesFile != "" {
		in := os.Stdin
		if c.seriesFile != "-" {
			f, err := os.Open(c.seriesFile)
			if err != nil {
				return 0, fmt.Errorf("could not open series file: %w", err)
			}
			defer f.Close()
			in = f
		}
		cf, err := dcf.DecodeSeries(c.seriesFile, in)
		if err != nil {
			return 0, err
		}
		return dcf.IRR(cf)
	}

	s, err := loadScenario()
	if err != nil {
		return 0, err
	}
	report, err := dcf.Analyze(s)
	if err != nil {
		return 0, err
	}
	return float64(report.IRR), nil
}
