package calculator

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"loan-engine/domain"
)

// Schedule builds the period-by-period breakdown of the loan. The first
// payment falls on start (today when start is zero) and each following one a
// fixed number of days later. The schedule stops early if a payment clears
// the balance, so it may hold fewer than NumberOfPayments entries.
func Schedule(t domain.LoanTerms, start time.Time) ([]domain.ScheduleEntry, error) {
	b, err := newBasis(t)
	if err != nil {
		return nil, err
	}
	return roundRows(b.rows(start, PeriodDays(t.Frequency))), nil
}

// ScheduleWithSummary returns the schedule together with its year-wise
// summary, the latter totalled from unrounded amounts.
func ScheduleWithSummary(t domain.LoanTerms, start time.Time) ([]domain.ScheduleEntry, []domain.YearSummary, error) {
	b, err := newBasis(t)
	if err != nil {
		return nil, nil, err
	}
	rows := b.rows(start, PeriodDays(t.Frequency))
	return roundRows(rows), summarizeRows(rows), nil
}

// row is a schedule entry before rounding.
type row struct {
	date                 time.Time
	opening, emi         float64
	principal, interest  float64
	closing              float64
	cumPrincipal, cumInt float64
}

func (b basis) rows(start time.Time, days int) []row {
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}
	flatInterest := b.totalInterest / float64(b.n)

	rows := make([]row, 0, b.n)
	balance := b.principal
	var cumPrincipal, cumInterest float64
	date := start

	for k := 1; k <= b.n; k++ {
		opening := balance

		var interest, principalPaid, closing float64
		if b.method == domain.Flat {
			interest = flatInterest
			principalPaid = b.emi - interest
			closing = opening - principalPaid
		} else {
			// Closed-form balances; the opening*r recurrence compounds float
			// error by (1+r)^n.
			closing = b.outstanding(k)
			principalPaid = opening - closing
			interest = b.emi - principalPaid
		}
		if k == b.n || principalPaid > opening {
			principalPaid = opening
			interest = b.emi - principalPaid
			closing = 0
		}
		closing = math.Max(closing, 0)

		cumPrincipal += principalPaid
		cumInterest += interest

		rows = append(rows, row{
			date:         date,
			opening:      opening,
			emi:          b.emi,
			principal:    principalPaid,
			interest:     interest,
			closing:      closing,
			cumPrincipal: cumPrincipal,
			cumInt:       cumInterest,
		})

		if closing <= 0 {
			break
		}
		balance = closing
		date = date.AddDate(0, 0, days)
	}
	return rows
}

func roundRows(rows []row) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, len(rows))
	for i, r := range rows {
		entries[i] = domain.ScheduleEntry{
			PaymentNumber:       i + 1,
			PaymentDate:         r.date,
			OpeningBalance:      Round2(r.opening),
			Emi:                 Round2(r.emi),
			PrincipalPaid:       Round2(r.principal),
			InterestPaid:        Round2(r.interest),
			ClosingBalance:      Round2(r.closing),
			CumulativePrincipal: Round2(r.cumPrincipal),
			CumulativeInterest:  Round2(r.cumInt),
		}
	}
	return entries
}

// OutstandingPrincipal returns the balance left after paymentsMade payments,
// from the closed form rather than a schedule walk:
//
//	P * ((1+r)^n - (1+r)^p) / ((1+r)^n - 1)
//
// For flat loans it is what remains of the total payable.
func OutstandingPrincipal(t domain.LoanTerms, paymentsMade int) (float64, error) {
	b, err := newBasis(t)
	if err != nil {
		return 0, err
	}
	return Round2(b.outstanding(paymentsMade)), nil
}

func (b basis) outstanding(paymentsMade int) float64 {
	if paymentsMade <= 0 {
		return b.principal
	}
	if paymentsMade >= b.n {
		return 0
	}
	p, n := float64(paymentsMade), float64(b.n)

	if b.method == domain.Flat {
		return math.Max(0, b.totalPayment-b.emi*p)
	}
	if b.periodicRate == 0 {
		return b.principal * (n - p) / n
	}
	fn := math.Pow(1+b.periodicRate, n)
	fp := math.Pow(1+b.periodicRate, p)
	return b.principal * (fn - fp) / (fn - 1)
}

// YearWiseSummary groups a schedule by the calendar year of each payment. The
// entries are already rounded, so their cents are added exactly; use
// ScheduleWithSummary to total the unrounded amounts instead.
func YearWiseSummary(schedule []domain.ScheduleEntry) []domain.YearSummary {
	type totals struct {
		principal, interest, payment decimal.Decimal
		closing                      float64
	}
	byYear := make(map[int]*totals)
	for _, e := range schedule {
		year := e.PaymentDate.Year()
		s, ok := byYear[year]
		if !ok {
			s = &totals{}
			byYear[year] = s
		}
		s.principal = s.principal.Add(decimal.NewFromFloat(e.PrincipalPaid))
		s.interest = s.interest.Add(decimal.NewFromFloat(e.InterestPaid))
		s.payment = s.payment.Add(decimal.NewFromFloat(e.Emi))
		s.closing = e.ClosingBalance
	}

	out := make([]domain.YearSummary, 0, len(byYear))
	for year, s := range byYear {
		out = append(out, domain.YearSummary{
			Year:           year,
			TotalPrincipal: s.principal.Round(2).InexactFloat64(),
			TotalInterest:  s.interest.Round(2).InexactFloat64(),
			TotalPayment:   s.payment.Round(2).InexactFloat64(),
			ClosingBalance: s.closing,
		})
	}
	sortByYear(out)
	return out
}

func summarizeRows(rows []row) []domain.YearSummary {
	byYear := make(map[int]*domain.YearSummary)
	for _, r := range rows {
		year := r.date.Year()
		s, ok := byYear[year]
		if !ok {
			s = &domain.YearSummary{Year: year}
			byYear[year] = s
		}
		s.TotalPrincipal += r.principal
		s.TotalInterest += r.interest
		s.TotalPayment += r.emi
		s.ClosingBalance = r.closing
	}

	out := make([]domain.YearSummary, 0, len(byYear))
	for _, s := range byYear {
		out = append(out, domain.YearSummary{
			Year:           s.Year,
			TotalPrincipal: Round2(s.TotalPrincipal),
			TotalInterest:  Round2(s.TotalInterest),
			TotalPayment:   Round2(s.TotalPayment),
			ClosingBalance: Round2(s.ClosingBalance),
		})
	}
	sortByYear(out)
	return out
}

func sortByYear(years []domain.YearSummary) {
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})
}
