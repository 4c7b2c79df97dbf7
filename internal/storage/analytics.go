package storage

import (
	"context"
	"fmt"
)

// Summary aggregates a user's activity over an inclusive date range.
type Summary struct {
	TotalIncomeCents  int64
	TotalExpenseCents int64
	TransactionCount  int
}

// CategoryTotal is one row of a per-category aggregation.
type CategoryTotal struct {
	Category   string
	TotalCents int64
	Count      int
}

// TrendPoint is one time bucket of income and expense totals. Period is the
// bucket start date in YYYY-MM-DD form.
type TrendPoint struct {
	Period       string
	IncomeCents  int64
	ExpenseCents int64
}

// Bucket expressions for trend grouping. The week expression shifts back to
// the most recent Monday (strftime %w counts Sunday as 0). Only values from
// this map are interpolated into SQL.
var periodExprs = map[string]string{
	"day":   `date`,
	"week":  `date(date, '-' || ((CAST(strftime('%w', date) AS INTEGER) + 6) % 7) || ' days')`,
	"month": `strftime('%Y-%m-01', date)`,
}

// ValidGroupBy reports whether key is an accepted trend granularity.
func ValidGroupBy(key string) bool {
	_, ok := periodExprs[key]
	return ok
}

// Summarize returns income, expense and row totals for the range.
func (s *Store) Summarize(ctx context.Context, userID int64, startDate, endDate string) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount_cents ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?`,
		userID, startDate, endDate,
	).Scan(&sum.TotalIncomeCents, &sum.TotalExpenseCents, &sum.TransactionCount)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}
	return sum, nil
}

// CategoryBreakdown returns per-category totals for one transaction type
// over the range, largest total first.
func (s *Store) CategoryBreakdown(ctx context.Context, userID int64, startDate, endDate, txType string) ([]CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents), COUNT(*)
		FROM transactions
		WHERE user_id = ? AND type = ? AND date >= ? AND date <= ?
		GROUP BY category
		ORDER BY SUM(amount_cents) DESC`,
		userID, txType, startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()

	totals := []CategoryTotal{}
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.TotalCents, &ct.Count); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	return totals, nil
}

// Trends buckets the range by day, week or month and returns income and
// expense totals per bucket in chronological order. groupBy must be one of
// the keys accepted by ValidGroupBy.
func (s *Store) Trends(ctx context.Context, userID int64, startDate, endDate, groupBy string) ([]TrendPoint, error) {
	expr, ok := periodExprs[groupBy]
	if !ok {
		return nil, fmt.Errorf("trends: unknown granularity %q", groupBy)
	}

	query := fmt.Sprintf(`
		SELECT
			%s AS period,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount_cents ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?
		GROUP BY period
		ORDER BY period ASC`, expr)

	rows, err := s.db.QueryContext(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("trends: %w", err)
	}
	defer rows.Close()

	points := []TrendPoint{}
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Period, &p.IncomeCents, &p.ExpenseCents); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trends: %w", err)
	}
	return points, nil
}
