// Package renderer turns analysis reports into markdown suitable for a
// terminal pager or a plain file.
package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	dcf "github.com/karlp-asrs/nus-apartment"
)

// ReportMarkdown renders the full report: the four annual summary tables and
// the internal rate of return.
func ReportMarkdown(r *dcf.Report) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool { return renderTitle(w, r) })
	ConditionalBlock(&b, func(w io.Writer) bool {
		return renderTable(w, "Operating Cash Flow", r.OperatingCashFlow, r.Scenario.Currency)
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return renderTable(w, "Total Cash Flow", r.TotalCashFlow, r.Scenario.Currency)
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return renderTable(w, "Taxable Income", r.TaxableIncome, r.Scenario.Currency)
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return renderTable(w, "Balance Sheet", r.BalanceSheet, r.Scenario.Currency)
	})
	ConditionalBlock(&b, func(w io.Writer) bool { return renderReturn(w, r) })
	return b.String()
}

// TableMarkdown renders a single annual table under its title.
func TableMarkdown(title string, t *dcf.Table, currency string) string {
	var b strings.Builder
	renderTable(&b, title, t, currency)
	return b.String()
}

// ScheduleMarkdown renders a loan amortization rollup.
func ScheduleMarkdown(terms dcf.LoanTerms, t *dcf.Table, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Amortization Schedule")
	doc.PlainText(fmt.Sprintf("%s at %s over %d years, %s payments of %s.",
		dcf.NewMoneyFromFloat(terms.Principal, currency),
		dcf.Percent(terms.AnnualRate),
		terms.Years,
		terms.Payments,
		dcf.NewMoneyFromFloat(terms.LevelPayment(), currency)))
	doc.Build()
	return buf.String() + "\n" + TableMarkdown("Annual Schedule", t, currency)
}

func renderTitle(w io.Writer, r *dcf.Report) bool {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	name := r.Scenario.Name
	if name == "" {
		name = "rental property"
	}
	doc.H1(fmt.Sprintf("DCF Analysis: %s", name))
	doc.PlainText(fmt.Sprintf("Purchase on %s, %d-year holding period, amounts in %s.",
		r.Scenario.Start, r.Scenario.Years, r.Scenario.Currency))
	doc.Build()
	fmt.Fprintln(w, buf.String())
	return true
}

func renderTable(w io.Writer, title string, t *dcf.Table, currency string) bool {
	if t == nil || t.Len() == 0 {
		return false
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2(title)

	columns := t.Columns()
	header := append([]string{"Year"}, titles(columns)...)

	var rows [][]string
	for on, values := range t.Rows() {
		row := make([]string, 0, len(values)+1)
		row = append(row, fmt.Sprintf("%d", on.Year()))
		for _, v := range values {
			row = append(row, dcf.NewMoneyFromFloat(v, currency).String())
		}
		rows = append(rows, row)
	}
	doc.Table(md.TableSet{Header: header, Rows: rows})
	doc.Build()
	fmt.Fprintln(w, buf.String())
	return true
}

func renderReturn(w io.Writer, r *dcf.Report) bool {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Return")
	doc.PlainText(fmt.Sprintf("Internal rate of return over %d years: %s (annualized).",
		r.Scenario.Years, r.IRR))
	doc.Build()
	fmt.Fprintln(w, buf.String())
	return true
}

// titles renders column names in title case for table headers.
func titles(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		words := strings.Fields(n)
		for j, word := range words {
			words[j] = strings.ToUpper(word[:1]) + word[1:]
		}
		out[i] = strings.Join(words, " ")
	}
	return out
}
