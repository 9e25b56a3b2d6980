package dcf

import (
	"math"
	"testing"
	"time"

	"github.com/karlp-asrs/nus-apartment/date"
)

func TestNewScheduleLength(t *testing.T) {
	start := date.New(2024, time.January, 1)
	for _, periods := range []int{0, 1, 6, 12, 360} {
		cf, err := NewSchedule("rent", start, 100, date.Monthly, periods, 0)
		if err != nil {
			t.Fatalf("NewSchedule(%d periods) error = %v", periods, err)
		}
		if cf.Len() != periods {
			t.Errorf("NewSchedule(%d periods).Len() = %d", periods, cf.Len())
		}
		// dates must be strictly increasing
		var prev date.Date
		first := true
		for on := range cf.Values() {
			if !first && !on.After(prev) {
				t.Errorf("NewSchedule(%d periods): date %s not after %s", periods, on, prev)
			}
			prev, first = on, false
		}
	}
}

func TestNewScheduleNegativePeriods(t *testing.T) {
	if _, err := NewSchedule("rent", date.New(2024, time.January, 1), 100, date.Monthly, -1, 0); err == nil {
		t.Fatal("NewSchedule(-1 periods) expected an error")
	}
}

func TestNewScheduleGrowth(t *testing.T) {
	start := date.New(2024, time.January, 1)
	growth := 0.04 / 12 // 4% annual, compounded monthly
	cf, err := NewSchedule("rent", start, 1000, date.Monthly, 24, growth)
	if err != nil {
		t.Fatalf("NewSchedule() error = %v", err)
	}
	// entry k = base × (1+growth)^k
	for _, k := range []int{0, 1, 12, 23} {
		on := date.Monthly.Advance(start, k)
		got, ok := cf.Amount(on)
		if !ok {
			t.Fatalf("no entry at %s", on)
		}
		want := 1000 * math.Pow(1+growth, float64(k))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("entry %d = %v, want %v", k, got, want)
		}
	}
}

func TestAddSumsSameDate(t *testing.T) {
	on := date.New(2024, time.June, 15)
	cf := NewCashFlow("repairs").Add(on, -200).Add(on, -300)
	if cf.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cf.Len())
	}
	if v, _ := cf.Amount(on); v != -500 {
		t.Errorf("Amount() = %v, want -500", v)
	}
}

func TestScaleNegTotal(t *testing.T) {
	start := date.New(2024, time.January, 1)
	cf, _ := NewSchedule("insurance", start, 50, date.Monthly, 12, 0)
	if got := cf.Total(); math.Abs(got-600) > 1e-9 {
		t.Errorf("Total() = %v, want 600", got)
	}
	neg := cf.Neg()
	if got := neg.Total(); math.Abs(got+600) > 1e-9 {
		t.Errorf("Neg().Total() = %v, want -600", got)
	}
	// the original series is untouched
	if got := cf.Total(); math.Abs(got-600) > 1e-9 {
		t.Errorf("Total() after Neg() = %v, want 600", got)
	}
}

func TestMerge(t *testing.T) {
	on := date.New(2024, time.March, 1)
	a := Event("a", on, -100)
	b := Event("b", on, 40).Add(date.New(2024, time.April, 1), 60)

	m := Merge("net", a, b)
	if m.Len() != 2 {
		t.Fatalf("Merge().Len() = %d, want 2", m.Len())
	}
	if v, _ := m.Amount(on); v != -60 {
		t.Errorf("merged amount = %v, want -60", v)
	}
	if got := m.Total(); math.Abs(got-0) > 1e-9 {
		t.Errorf("merged Total() = %v, want 0", got)
	}
}
