package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	dcf "github.com/karlp-asrs/nus-apartment"
	"github.com/karlp-asrs/nus-apartment/renderer"
)

// assistCmd asks a language model to comment the analysis.
type assistCmd struct {
	model string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "explain the analysis with the help of a language model"
}
func (*assistCmd) Usage() string {
	return `dcfa assist [<question>...]

  Runs the analysis and asks Gemini to explain it, or to answer a specific
  question about it. Requires Gemini credentials in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Model to ask")
}

const assistPreamble = `You are a careful real-estate investment analyst.
Below is the discounted-cash-flow analysis of a rental-property project,
with four annual tables and the project's internal rate of return.
Explain the economics of the project in plain language, point at the numbers
that drive the outcome, and mention the main risks of the assumptions.`

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	prompt := assistPreamble + "\n\n" + renderer.ReportMarkdown(report)
	if f.NArg() > 0 {
		prompt += "\n\nQuestion: " + strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error asking the model:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
