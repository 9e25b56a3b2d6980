package dcf

import (
	"fmt"
	"math"

	"github.com/karlp-asrs/nus-apartment/date"
)

// LoanTerms describes a fixed-rate, level-payment loan.
type LoanTerms struct {
	Principal  float64     `json:"principal"`
	AnnualRate float64     `json:"rate"`  // nominal annual rate, e.g. 0.03 for 3%
	Years      int         `json:"years"` // amortization term
	Payments   date.Period `json:"payments"`
}

// PeriodicRate returns the per-period interest rate (nominal annual rate
// divided by the number of payments per year).
func (t LoanTerms) PeriodicRate() float64 {
	return t.AnnualRate / float64(t.Payments.PerYear())
}

// NumPayments returns the total number of payments over the term.
func (t LoanTerms) NumPayments() int { return t.Years * t.Payments.PerYear() }

// LevelPayment returns the constant per-period payment amortizing the
// principal to zero over the term. Zero-rate loans amortize linearly.
func (t LoanTerms) LevelPayment() float64 {
	n := float64(t.NumPayments())
	i := t.PeriodicRate()
	if i == 0 {
		return t.Principal / n
	}
	return t.Principal * i / (1 - math.Pow(1+i, -n))
}

// Validate reports the first problem preventing the loan from amortizing.
func (t LoanTerms) Validate() error {
	if t.Principal <= 0 {
		return fmt.Errorf("loan principal must be positive, got %v", t.Principal)
	}
	if t.Years <= 0 {
		return fmt.Errorf("loan term must be positive, got %d years", t.Years)
	}
	if t.AnnualRate < 0 {
		return fmt.Errorf("loan rate must not be negative, got %v", t.AnnualRate)
	}
	if p := t.LevelPayment(); !(p > t.Principal*t.PeriodicRate()) {
		// The fixed payment must exceed first-period interest, otherwise the
		// balance never reaches zero within the stated term.
		return fmt.Errorf("level payment %v cannot amortize principal %v over %d years", p, t.Principal, t.Years)
	}
	return nil
}

// Amortization holds the three per-period series of a loan schedule.
// Payment and Interest are flow quantities; Balance is the outstanding
// principal standing after each payment, a stock quantity. All amounts are
// positive; callers flip the sign when a payment is an outflow to them.
type Amortization struct {
	Payment  *CashFlow
	Interest *CashFlow
	Balance  *CashFlow
}

// Amortize builds the full payment schedule of a loan. The first payment
// falls one period after start, the last one Years×Payments periods after.
// The balance after the final payment is exactly zero; the float rounding
// residue of the closed-form payment is absorbed there.
func Amortize(terms LoanTerms, start date.Date) (*Amortization, error) {
	if err := terms.Validate(); err != nil {
		return nil, fmt.Errorf("amortize: %w", err)
	}

	n := terms.NumPayments()
	i := terms.PeriodicRate()
	payment := terms.LevelPayment()

	a := &Amortization{
		Payment:  NewCashFlow("mortgage payment"),
		Interest: NewCashFlow("mortgage interest"),
		Balance:  NewCashFlow("loan balance"),
	}

	balance := terms.Principal
	for k := 1; k <= n; k++ {
		on := terms.Payments.Advance(start, k)
		interest := balance * i
		balance -= payment - interest
		if k == n {
			// tolerate rounding at the last period only
			if math.Abs(balance) > 1e-6*terms.Principal {
				return nil, fmt.Errorf("amortize: final balance %v not zero after %d payments", balance, n)
			}
			balance = 0
		}
		a.Payment.Add(on, payment)
		a.Interest.Add(on, interest)
		a.Balance.Add(on, balance)
	}
	return a, nil
}
