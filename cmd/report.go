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

type reportCmd struct {
	json bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full DCF analysis of the scenario" }
func (*reportCmd) Usage() string {
	return `dcfa report [-json]

  Runs the discounted-cash-flow analysis of the scenario file and displays
  the four annual summary tables (operating cash flow, total cash flow,
  taxable income, balance sheet) and the internal rate of return.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Emit the report as JSON instead of markdown")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if c.json {
		if err := dcf.EncodeReport(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
