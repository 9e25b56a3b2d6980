package dcf

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateCashFlow reports an IRR request over a series with no sign
// change (all inflows or all outflows): no meaningful rate exists.
var ErrDegenerateCashFlow = errors.New("cash flow has no sign change")

// ErrNoConvergence reports that the root finder exhausted its iteration
// budget or found no bracket, distinct from a degenerate input so callers can
// tell "no solution exists" from "the solver gave up".
var ErrNoConvergence = errors.New("no rate of return found")

// daysPerYear converts day counts to years, leap years included.
const daysPerYear = 365.25

// NPV returns the net present value of the series discounted at the given
// annual rate, from the series' first date: Σ cf_i × (1+rate)^(−t_i) with
// t_i the elapsed time in years.
func NPV(rate float64, cf *CashFlow) float64 {
	first, _ := cf.First()
	var sum float64
	for on, v := range cf.Values() {
		t := float64(on.DaysSince(first)) / daysPerYear
		sum += v * math.Pow(1+rate, -t)
	}
	return sum
}

// IRR returns the annualized internal rate of return of the series: the rate
// making its NPV zero. Amounts must contain at least one inflow and one
// outflow, otherwise ErrDegenerateCashFlow is returned.
//
// Cash-flow sign patterns can admit several real roots. The policy here is
// the smallest non-negative root; when NPV has no root at or above zero the
// search falls back to (−1, 0). ErrNoConvergence is returned when no root is
// bracketed or the iteration budget runs out.
func IRR(cf *CashFlow) (float64, error) {
	if cf.Len() == 0 {
		return 0, fmt.Errorf("irr %q: empty series: %w", cf.Name(), ErrDegenerateCashFlow)
	}
	var hasInflow, hasOutflow bool
	for _, v := range cf.Values() {
		if v > 0 {
			hasInflow = true
		}
		if v < 0 {
			hasOutflow = true
		}
	}
	if !hasInflow || !hasOutflow {
		return 0, fmt.Errorf("irr %q: %w", cf.Name(), ErrDegenerateCashFlow)
	}

	f := func(r float64) float64 { return NPV(r, cf) }

	// Scan for the first sign change from rate 0 upward, then fall back to
	// rates down to (but excluding) -100%.
	if lo, hi, ok := bracket(f, grid(0, 10, 0.05)); ok {
		return bisect(f, lo, hi)
	}
	if lo, hi, ok := bracket(f, geometric(10, 1e6)); ok {
		return bisect(f, lo, hi)
	}
	if lo, hi, ok := bracket(f, grid(-0.9999, 0, 0.01)); ok {
		return bisect(f, lo, hi)
	}
	return 0, fmt.Errorf("irr %q: no root bracketed: %w", cf.Name(), ErrNoConvergence)
}

// grid yields evenly spaced rates in [lo, hi].
func grid(lo, hi, step float64) []float64 {
	var out []float64
	for r := lo; r <= hi+step/2; r += step {
		out = append(out, math.Min(r, hi))
	}
	return out
}

// geometric yields doubling rates in [lo, hi] for the far tail of the search.
func geometric(lo, hi float64) []float64 {
	var out []float64
	for r := lo; r <= hi; r *= 2 {
		out = append(out, r)
	}
	return out
}

// bracket returns the first adjacent pair of rates where f changes sign.
func bracket(f func(float64) float64, rates []float64) (lo, hi float64, ok bool) {
	if len(rates) == 0 {
		return 0, 0, false
	}
	prev := rates[0]
	fprev := f(prev)
	if fprev == 0 {
		return prev, prev, true
	}
	for _, r := range rates[1:] {
		fr := f(r)
		if fr == 0 || fprev*fr < 0 {
			return prev, r, true
		}
		prev, fprev = r, fr
	}
	return 0, 0, false
}

// bisect narrows a sign-changing bracket down to the root.
func bisect(f func(float64) float64, lo, hi float64) (float64, error) {
	const maxIterations = 200
	const tolerance = 1e-10

	flo := f(lo)
	if flo == 0 {
		return lo, nil
	}
	if fhi := f(hi); fhi == 0 {
		return hi, nil
	}
	for range maxIterations {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 || hi-lo < tolerance {
			return mid, nil
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, fmt.Errorf("bisection exceeded %d iterations: %w", maxIterations, ErrNoConvergence)
}
