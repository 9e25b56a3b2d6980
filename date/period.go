package date

import (
	"fmt"
	"strings"
)

// Period is a payment or observation frequency.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	SemiAnnual
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case SemiAnnual:
		return "semiannual"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// PerYear returns the number of periods in one year.
func (p Period) PerYear() int {
	switch p {
	case Daily:
		return 365
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case SemiAnnual:
		return 2
	case Yearly:
		return 1
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Advance steps the date n periods forward (backward for negative n).
// Month-based periods step by calendar months, so the day of month is
// preserved except on overflow (see Date.AddMonths).
func (p Period) Advance(d Date, n int) Date {
	switch p {
	case Daily:
		return d.Add(n)
	case Weekly:
		return d.Add(7 * n)
	case Monthly:
		return d.AddMonths(n)
	case Quarterly:
		return d.AddMonths(3 * n)
	case SemiAnnual:
		return d.AddMonths(6 * n)
	case Yearly:
		return d.AddMonths(12 * n)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "semiannual", "semi-annual", "halfyear":
		return SemiAnnual, nil
	case "yearly", "year", "annual":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}

// MarshalJSON writes the period as its lowercase name.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

// UnmarshalJSON reads a period from its name.
func (p *Period) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
