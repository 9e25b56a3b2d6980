package dcf

import (
	"fmt"
	"math"
	"time"

	"github.com/karlp-asrs/nus-apartment/date"
)

// RentTerms describes the lease assumptions.
type RentTerms struct {
	Annual  float64 `json:"annual"`  // starting rent per year
	Growth  float64 `json:"growth"`  // annual growth rate, compounded monthly
	Vacancy float64 `json:"vacancy"` // fraction of rent lost to vacancy
}

// RenovationTerms describes the up-front renovation, spent linearly over the
// given number of months starting the month after purchase.
type RenovationTerms struct {
	Budget float64 `json:"budget"`
	Months int     `json:"months"`
}

// ExpenseTerms describes one recurring operating expense (maintenance,
// insurance, property tax...) billed on its own schedule.
type ExpenseTerms struct {
	Name   string      `json:"name"`
	Annual float64     `json:"annual"` // amount per year, positive
	Period date.Period `json:"period"` // billing frequency
	Growth float64     `json:"growth"` // annual growth rate, compounded per billing period
}

// DepreciationTerms describes straight-line tax depreciation. Zero Years
// disables depreciation.
type DepreciationTerms struct {
	Years         float64 `json:"years"`          // depreciable life, e.g. 27.5
	BuildingShare float64 `json:"building_share"` // depreciable fraction of the price; land does not depreciate
}

// Scenario is the full set of scalar assumptions of a rental-property
// project. The analysis is a pure function of a Scenario.
type Scenario struct {
	Name          string            `json:"name"`
	Currency      string            `json:"currency"`
	Start         date.Date         `json:"start"`
	PurchasePrice float64           `json:"purchase_price"`
	ClosingCosts  float64           `json:"closing_costs"`
	Loan          LoanTerms         `json:"loan"`
	Renovation    RenovationTerms   `json:"renovation"`
	Rent          RentTerms         `json:"rent"`
	Expenses      []ExpenseTerms    `json:"expenses"`
	Appreciation  float64           `json:"appreciation"` // annual house value growth, compounded monthly
	Depreciation  DepreciationTerms `json:"depreciation"`
	Years         int               `json:"years"` // holding period
}

// Validate reports the first invalid assumption. No partial computation
// proceeds on an invalid scenario.
func (s Scenario) Validate() error {
	if (s.Start == date.Date{}) {
		return fmt.Errorf("scenario %q: missing start date", s.Name)
	}
	if s.PurchasePrice <= 0 {
		return fmt.Errorf("scenario %q: purchase price must be positive, got %v", s.Name, s.PurchasePrice)
	}
	if s.Years <= 0 {
		return fmt.Errorf("scenario %q: holding period must be positive, got %d years", s.Name, s.Years)
	}
	if s.ClosingCosts < 0 {
		return fmt.Errorf("scenario %q: negative closing costs %v", s.Name, s.ClosingCosts)
	}
	if s.Rent.Annual < 0 {
		return fmt.Errorf("scenario %q: negative rent %v", s.Name, s.Rent.Annual)
	}
	if s.Rent.Vacancy < 0 || s.Rent.Vacancy >= 1 {
		return fmt.Errorf("scenario %q: vacancy %v out of [0, 1)", s.Name, s.Rent.Vacancy)
	}
	if s.Renovation.Budget < 0 || s.Renovation.Months < 0 {
		return fmt.Errorf("scenario %q: invalid renovation %v over %d months", s.Name, s.Renovation.Budget, s.Renovation.Months)
	}
	if s.Renovation.Budget > 0 && s.Renovation.Months == 0 {
		return fmt.Errorf("scenario %q: renovation budget needs a positive duration", s.Name)
	}
	if s.Loan.Principal != 0 {
		if err := s.Loan.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	for _, ex := range s.Expenses {
		if ex.Name == "" {
			return fmt.Errorf("scenario %q: expense with no name", s.Name)
		}
		if ex.Annual < 0 {
			return fmt.Errorf("scenario %q: negative expense %q", s.Name, ex.Name)
		}
	}
	if s.Depreciation.Years < 0 {
		return fmt.Errorf("scenario %q: negative depreciable life %v", s.Name, s.Depreciation.Years)
	}
	if s.Depreciation.BuildingShare < 0 || s.Depreciation.BuildingShare > 1 {
		return fmt.Errorf("scenario %q: building share %v out of [0, 1]", s.Name, s.Depreciation.BuildingShare)
	}
	return nil
}

// Report is the result of analyzing a scenario: the four annual summary
// tables and the internal rate of return over the holding period.
type Report struct {
	Scenario          Scenario
	OperatingCashFlow *Table // rent and operating expenses, flow
	TotalCashFlow     *Table // operating plus equity outlay, renovation and debt service, flow
	TaxableIncome     *Table // rent less expenses, interest and depreciation, flow
	BalanceSheet      *Table // house value and loan balance, stock; Total is owner equity
	IRR               Percent
}

// Analyze runs the discounted-cash-flow analysis of a scenario. It is a pure
// function: same assumptions, same report.
func Analyze(s Scenario) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	months := s.Years * 12

	// Rent starts once the renovation is done and runs to the horizon.
	rentMonths := months - s.Renovation.Months
	if rentMonths < 0 {
		rentMonths = 0
	}
	rent, err := NewSchedule("rent",
		date.Monthly.Advance(s.Start, s.Renovation.Months+1),
		s.Rent.Annual/12*(1-s.Rent.Vacancy),
		date.Monthly, rentMonths, s.Rent.Growth/12)
	if err != nil {
		return nil, err
	}

	expenses := make([]*CashFlow, 0, len(s.Expenses))
	for _, ex := range s.Expenses {
		perYear := ex.Period.PerYear()
		cf, err := NewSchedule(ex.Name,
			ex.Period.Advance(s.Start, 1),
			-ex.Annual/float64(perYear),
			ex.Period, s.Years*perYear, ex.Growth/float64(perYear))
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, cf)
	}

	var debtService, interest, balance *CashFlow
	if s.Loan.Principal != 0 {
		am, err := Amortize(s.Loan, s.Start)
		if err != nil {
			return nil, err
		}
		debtService = am.Payment.Neg()
		interest = am.Interest.Neg()
		balance = am.Balance.Neg() // a liability on the balance sheet
	}

	// The cash the owner puts down at closing: price plus costs, less the
	// mortgage draw.
	purchase := Event("purchase", s.Start, -(s.PurchasePrice - s.Loan.Principal + s.ClosingCosts))

	var renovation *CashFlow
	if s.Renovation.Budget > 0 {
		renovation, err = NewSchedule("renovation",
			date.Monthly.Advance(s.Start, 1),
			-s.Renovation.Budget/float64(s.Renovation.Months),
			date.Monthly, s.Renovation.Months, 0)
		if err != nil {
			return nil, err
		}
	}

	depreciation := s.depreciationSchedule()
	value := s.houseValue(months)

	// Assemble the four tables.
	operating := Combine(append([]*CashFlow{rent}, expenses...)...)

	totalFlows := []*CashFlow{purchase}
	if renovation != nil {
		totalFlows = append(totalFlows, renovation)
	}
	totalFlows = append(totalFlows, rent)
	totalFlows = append(totalFlows, expenses...)
	if debtService != nil {
		totalFlows = append(totalFlows, debtService)
	}
	total := Combine(totalFlows...)

	taxableFlows := append([]*CashFlow{rent}, expenses...)
	if interest != nil {
		taxableFlows = append(taxableFlows, interest)
	}
	if depreciation != nil {
		taxableFlows = append(taxableFlows, depreciation)
	}
	taxable := Combine(taxableFlows...)

	sheetFlows := []*CashFlow{value}
	if balance != nil {
		sheetFlows = append(sheetFlows, balance)
	}
	sheet := Combine(sheetFlows...)

	// The project series for the IRR: every actual cash movement within the
	// holding period plus the terminal owner equity, as if sold at the
	// horizon. The loan schedule runs past the horizon and is clipped; its
	// remaining balance is repaid out of the sale, which is what the equity
	// term carries.
	horizon := date.Monthly.Advance(s.Start, months)
	holding := date.Range{From: s.Start, To: horizon}
	equity, _ := value.AsOf(horizon)
	if balance != nil {
		if b, ok := balance.AsOf(horizon); ok {
			equity += b // balance is negative
		}
	}
	project := Merge("project", totalFlows...).Clip(holding).Add(horizon, equity)
	irr, err := IRR(project)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	return &Report{
		Scenario:          s,
		OperatingCashFlow: operating.AnnualizeFlow(s.Years),
		TotalCashFlow:     total.AnnualizeFlow(s.Years),
		TaxableIncome:     taxable.AnnualizeFlow(s.Years),
		BalanceSheet:      sheet.AnnualizeStock(s.Years),
		IRR:               Percent(irr),
	}, nil
}

// depreciationSchedule returns the straight-line depreciation series, one
// negative entry at each year end of the holding period, or nil when
// depreciation is disabled. The depreciable basis is the building share of
// the price plus the renovation budget.
func (s Scenario) depreciationSchedule() *CashFlow {
	if s.Depreciation.Years == 0 {
		return nil
	}
	basis := s.PurchasePrice*s.Depreciation.BuildingShare + s.Renovation.Budget
	annual := basis / s.Depreciation.Years
	cf := NewCashFlow("depreciation")
	for y := 0; y < s.Years; y++ {
		cf.Add(date.New(s.Start.Year()+y, time.December, 31), -annual)
	}
	return cf
}

// houseValue returns the monthly house value series: the cost basis (price
// plus renovation spent so far) appreciating at the annual rate, compounded
// monthly.
func (s Scenario) houseValue(months int) *CashFlow {
	cf := NewCashFlow("house value")
	for k := 0; k <= months; k++ {
		basis := s.PurchasePrice
		if s.Renovation.Months > 0 {
			done := min(k, s.Renovation.Months)
			basis += s.Renovation.Budget * float64(done) / float64(s.Renovation.Months)
		}
		value := basis * math.Pow(1+s.Appreciation/12, float64(k))
		cf.Add(date.Monthly.Advance(s.Start, k), value)
	}
	return cf
}
