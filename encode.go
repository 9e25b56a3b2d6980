package dcf

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/karlp-asrs/nus-apartment/date"
)

// This file handles the persistence boundary of the package: scenario
// assumption files (JSON), ad hoc cash-flow series (JSONL, one dated event
// per line) and the JSON form of a report, all human-readable and
// git-friendly.

// DefaultScenario returns a scenario prefilled with the conventions a file
// may omit: USD amounts and a monthly mortgage.
func DefaultScenario() Scenario {
	return Scenario{
		Currency: "USD",
		Loan:     LoanTerms{Payments: date.Monthly},
	}
}

// DecodeScenario reads the scalar assumptions of a project from JSON,
// applies the defaults of DefaultScenario for absent fields, and validates
// the result.
func DecodeScenario(r io.Reader) (Scenario, error) {
	s := DefaultScenario()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("could not decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// EncodeScenario writes the scenario as indented JSON.
func EncodeScenario(w io.Writer, s Scenario) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("could not encode scenario %q: %w", s.Name, err)
	}
	return nil
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(filename string) (Scenario, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Scenario{}, fmt.Errorf("could not open scenario file: %w", err)
	}
	defer f.Close()
	s, err := DecodeScenario(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("in scenario file %q: %w", filename, err)
	}
	return s, nil
}

// DecodeSeries reads a cash-flow series from a stream of JSONL data, one
// event per line: {"date": "2024-01-01", "amount": -100}. Events on the same
// date are summed.
func DecodeSeries(name string, r io.Reader) (*CashFlow, error) {
	cf := NewCashFlow(name)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue // Skip empty lines
		}
		var event struct {
			Date   date.Date `json:"date"`
			Amount float64   `json:"amount"`
		}
		if err := json.Unmarshal([]byte(text), &event); err != nil {
			return nil, fmt.Errorf("could not decode event on line %d: %w", line, err)
		}
		cf.Add(event.Date, event.Amount)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read series: %w", err)
	}
	return cf, nil
}

// MarshalJSON writes the table as {"columns": [...], "rows": [{"date": ...,
// "<column>": ...}, ...]}, one object per row keyed by column name, a shape
// query tools address naturally.
func (t *Table) MarshalJSON() ([]byte, error) {
	type row = map[string]any
	out := struct {
		Columns []string `json:"columns"`
		Rows    []row    `json:"rows"`
	}{Columns: t.columns, Rows: make([]row, 0, len(t.dates))}

	for i, on := range t.dates {
		r := row{"date": on}
		for j, col := range t.columns {
			r[col] = t.cells[i][j]
		}
		out.Rows = append(out.Rows, r)
	}
	return json.Marshal(out)
}

// EncodeReport writes the full report as indented JSON.
func EncodeReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Scenario          Scenario `json:"scenario"`
		OperatingCashFlow *Table   `json:"operating_cash_flow"`
		TotalCashFlow     *Table   `json:"total_cash_flow"`
		TaxableIncome     *Table   `json:"taxable_income"`
		BalanceSheet      *Table   `json:"balance_sheet"`
		IRR               Percent  `json:"irr"`
	}{r.Scenario, r.OperatingCashFlow, r.TotalCashFlow, r.TaxableIncome, r.BalanceSheet, r.IRR}); err != nil {
		return fmt.Errorf("could not encode report %q: %w", r.Scenario.Name, err)
	}
	return nil
}
