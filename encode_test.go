package dcf

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/karlp-asrs/nus-apartment/date"
)

const scenarioJSON = `{
  "name": "house",
  "start": "2024-01-01",
  "purchase_price": 300000,
  "closing_costs": 5000,
  "loan": {"principal": 250000, "rate": 0.03, "years": 30},
  "renovation": {"budget": 20000, "months": 6},
  "rent": {"annual": 20000, "growth": 0.04},
  "expenses": [
    {"name": "insurance", "annual": 600, "period": "semiannual"},
    {"name": "property tax", "annual": 3000, "period": "yearly"}
  ],
  "appreciation": 0.03,
  "depreciation": {"years": 27.5, "building_share": 0.8},
  "years": 10
}`

func TestDecodeScenario(t *testing.T) {
	s, err := DecodeScenario(strings.NewReader(scenarioJSON))
	if err != nil {
		t.Fatalf("DecodeScenario() error = %v", err)
	}
	if s.Start != date.New(2024, time.January, 1) {
		t.Errorf("Start = %v", s.Start)
	}
	// omitted fields fall back to the defaults
	if s.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", s.Currency)
	}
	if s.Loan.Payments != date.Monthly {
		t.Errorf("Loan.Payments = %v, want monthly", s.Loan.Payments)
	}
	if len(s.Expenses) != 2 || s.Expenses[0].Period != date.SemiAnnual {
		t.Errorf("Expenses = %+v", s.Expenses)
	}
}

func TestDecodeScenarioRejectsUnknownField(t *testing.T) {
	if _, err := DecodeScenario(strings.NewReader(`{"purchace_price": 1}`)); err == nil {
		t.Error("DecodeScenario() expected an error on a misspelled field")
	}
}

func TestDecodeScenarioValidates(t *testing.T) {
	// syntactically fine, semantically broken: no holding period
	in := `{"name": "x", "start": "2024-01-01", "purchase_price": 1000}`
	if _, err := DecodeScenario(strings.NewReader(in)); err == nil {
		t.Error("DecodeScenario() expected a validation error")
	}
}

func TestScenarioRoundTrip(t *testing.T) {
	s, err := DecodeScenario(strings.NewReader(scenarioJSON))
	if err != nil {
		t.Fatalf("DecodeScenario() error = %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeScenario(&buf, s); err != nil {
		t.Fatalf("EncodeScenario() error = %v", err)
	}
	back, err := DecodeScenario(&buf)
	if err != nil {
		t.Fatalf("DecodeScenario(round trip) error = %v", err)
	}
	if back.PurchasePrice != s.PurchasePrice || back.Loan != s.Loan || len(back.Expenses) != len(s.Expenses) {
		t.Errorf("round trip lost data: %+v != %+v", back, s)
	}
}

func TestDecodeSeries(t *testing.T) {
	in := `
{"date": "2024-01-01", "amount": -100}

{"date": "2024-06-01", "amount": 60}
{"date": "2024-06-01", "amount": 40}
`
	cf, err := DecodeSeries("test", strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeSeries() error = %v", err)
	}
	if cf.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (same-date events summed)", cf.Len())
	}
	if v, _ := cf.Amount(date.New(2024, time.June, 1)); v != 100 {
		t.Errorf("summed amount = %v, want 100", v)
	}
}

func TestDecodeSeriesBadLine(t *testing.T) {
	if _, err := DecodeSeries("x", strings.NewReader(`{"date": "yesterday", "amount": 1}`)); err == nil {
		t.Error("DecodeSeries() expected an error on a malformed date")
	}
}

func TestTableMarshalJSON(t *testing.T) {
	tbl := Combine(
		Event("rent", date.New(2025, time.January, 1), 100),
		Event("tax", date.New(2025, time.February, 1), -30),
	)
	b, err := json.Marshal(tbl)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(got.Rows))
	}
	if got.Rows[0]["rent"] != 100.0 || got.Rows[0]["total"] != 100.0 {
		t.Errorf("row 0 = %v", got.Rows[0])
	}
	if got.Rows[1]["tax"] != -30.0 {
		t.Errorf("row 1 = %v", got.Rows[1])
	}
}
