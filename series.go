package dcf

import (
	"fmt"
	"iter"
	"math"

	"github.com/karlp-asrs/nus-apartment/date"
)

// CashFlow is a named, chronological series of signed monetary amounts.
// Negative amounts are outflows, positive amounts are inflows. Two events
// landing on the same date are summed. A CashFlow is also used for stock
// quantities (an outstanding balance, a house value) where each entry is a
// point-in-time observation rather than a flow.
//
// A CashFlow is built once from assumptions and is not meant to be mutated
// afterwards; all transforming methods return a new series.
type CashFlow struct {
	name string
	hist date.History[float64]
}

// NewCashFlow returns an empty series with the given category name.
func NewCashFlow(name string) *CashFlow { return &CashFlow{name: name} }

// Event returns a series holding a single dated amount.
func Event(name string, on date.Date, amount float64) *CashFlow {
	return NewCashFlow(name).Add(on, amount)
}

// NewSchedule builds a periodic series of `periods` entries starting at
// `start`, one entry per period. When growth is non-zero the amount compounds
// per period: entry k carries amount × (1+growth)^k.
//
// Zero periods yield an empty series, not an error.
func NewSchedule(name string, start date.Date, amount float64, period date.Period, periods int, growth float64) (*CashFlow, error) {
	if periods < 0 {
		return nil, fmt.Errorf("schedule %q: negative period count %d", name, periods)
	}
	cf := NewCashFlow(name)
	for k := range periods {
		cf.hist.AppendAdd(period.Advance(start, k), amount*math.Pow(1+growth, float64(k)))
	}
	return cf, nil
}

// Add records an amount on a date, summing with any existing amount on that
// date, and returns the receiver for chaining. It is meant for series
// construction only.
func (c *CashFlow) Add(on date.Date, amount float64) *CashFlow {
	c.hist.AppendAdd(on, amount)
	return c
}

// Name returns the category name of the series.
func (c *CashFlow) Name() string { return c.name }

// Len returns the number of dated entries.
func (c *CashFlow) Len() int { return c.hist.Len() }

// Values returns an iterator over all date/amount pairs in chronological order.
func (c *CashFlow) Values() iter.Seq2[date.Date, float64] { return c.hist.Values() }

// Amount returns the amount recorded on a date, or zero and false.
func (c *CashFlow) Amount(on date.Date) (float64, bool) { return c.hist.Get(on) }

// AsOf returns the amount on a date or the most recent one before it.
// This is the stock-quantity read: the balance standing on that day.
func (c *CashFlow) AsOf(on date.Date) (float64, bool) { return c.hist.ValueAsOf(on) }

// First returns the earliest date and amount, or zero values when empty.
func (c *CashFlow) First() (date.Date, float64) { return c.hist.First() }

// Latest returns the latest date and amount, or zero values when empty.
func (c *CashFlow) Latest() (date.Date, float64) { return c.hist.Latest() }

// Total returns the sum of all amounts in the series.
func (c *CashFlow) Total() float64 {
	var sum float64
	for _, v := range c.hist.Values() {
		sum += v
	}
	return sum
}

// Scale returns a new series with every amount multiplied by f.
func (c *CashFlow) Scale(f float64) *CashFlow {
	out := NewCashFlow(c.name)
	for on, v := range c.hist.Values() {
		out.hist.AppendAdd(on, v*f)
	}
	return out
}

// Neg returns a new series with every amount negated. It turns a schedule of
// positive amounts (a rent roll, a debt service) into the matching outflow.
func (c *CashFlow) Neg() *CashFlow { return c.Scale(-1) }

// Rename returns a copy of the series under a new category name.
func (c *CashFlow) Rename(name string) *CashFlow {
	out := NewCashFlow(name)
	for on, v := range c.hist.Values() {
		out.hist.AppendAdd(on, v)
	}
	return out
}

// Clip returns a new series keeping only the entries within the range,
// boundaries included.
func (c *CashFlow) Clip(r date.Range) *CashFlow {
	out := NewCashFlow(c.name)
	for on, v := range c.hist.Values() {
		if r.Contains(on) {
			out.hist.AppendAdd(on, v)
		}
	}
	return out
}

// Merge returns a new series combining all entries of the given series,
// summing amounts that land on the same date.
func Merge(name string, flows ...*CashFlow) *CashFlow {
	out := NewCashFlow(name)
	for _, f := range flows {
		if f == nil {
			continue
		}
		for on, v := range f.hist.Values() {
			out.hist.AppendAdd(on, v)
		}
	}
	return out
}
