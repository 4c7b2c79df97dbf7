package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
)

type periodResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type categoryBreakdownItem struct {
	Category   string  `json:"category"`
	Amount     string  `json:"amount"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

type trendPointResponse struct {
	Period   string `json:"period"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// parseDateRange resolves the shared analytics range: unless both dates are
// supplied it falls back to first of the current month through today; a
// supplied range must parse, be ordered, and not reach into the future.
func parseDateRange(w http.ResponseWriter, r *http.Request) (start, end string, ok bool) {
	start = r.URL.Query().Get("startDate")
	end = r.URL.Query().Get("endDate")

	now := time.Now().UTC()
	if start == "" || end == "" {
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.Format("2006-01-02"), now.Format("2006-01-02"), true
	}

	if !core.ValidDate(start) || !core.ValidDate(end) {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD", CodeValidationError)
		return "", "", false
	}
	if end < start {
		writeError(w, http.StatusBadRequest,
			"endDate must be greater than or equal to startDate", CodeValidationError)
		return "", "", false
	}
	if end > now.Format("2006-01-02") {
		writeError(w, http.StatusBadRequest, "Cannot select future dates", CodeValidationError)
		return "", "", false
	}
	return start, end, true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	start, end, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	sum, err := s.store.Summarize(ctx, identity.UserID, start, end)
	if err != nil {
		s.logger.ErrorContext(ctx, "summary failed",
			applog.FieldUserID, identity.UserID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch summary", CodeDatabaseError)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"totalIncome":      core.FormatCents(sum.TotalIncomeCents),
		"totalExpenses":    core.FormatCents(sum.TotalExpenseCents),
		"netBalance":       core.FormatCents(sum.TotalIncomeCents - sum.TotalExpenseCents),
		"transactionCount": sum.TransactionCount,
		"period":           periodResponse{StartDate: start, EndDate: end},
	})
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	txType := r.URL.Query().Get("type")
	if !core.ValidType(txType) {
		writeError(w, http.StatusBadRequest,
			`type is required and must be either "income" or "expense"`, CodeValidationError)
		return
	}

	start, end, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	totals, err := s.store.CategoryBreakdown(ctx, identity.UserID, start, end, txType)
	if err != nil {
		s.logger.ErrorContext(ctx, "category breakdown failed",
			applog.FieldUserID, identity.UserID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch category breakdown", CodeDatabaseError)
		return
	}

	var typeTotal int64
	for _, ct := range totals {
		typeTotal += ct.TotalCents
	}

	items := make([]categoryBreakdownItem, 0, len(totals))
	for _, ct := range totals {
		items = append(items, categoryBreakdownItem{
			Category:   ct.Category,
			Amount:     core.FormatCents(ct.TotalCents),
			Percentage: percentage(ct.TotalCents, typeTotal),
			Count:      ct.Count,
		})
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"type":      txType,
		"breakdown": items,
		"period":    periodResponse{StartDate: start, EndDate: end},
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	groupBy := r.URL.Query().Get("groupBy")
	if groupBy != "day" && groupBy != "week" && groupBy != "month" {
		writeError(w, http.StatusBadRequest,
			`groupBy is required and must be one of "day", "week" or "month"`, CodeValidationError)
		return
	}

	start, end, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	points, err := s.store.Trends(ctx, identity.UserID, start, end, groupBy)
	if err != nil {
		s.logger.ErrorContext(ctx, "trends failed",
			applog.FieldUserID, identity.UserID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch trends", CodeDatabaseError)
		return
	}

	trends := make([]trendPointResponse, 0, len(points))
	for _, p := range points {
		trends = append(trends, trendPointResponse{
			Period:   p.Period,
			Income:   core.FormatCents(p.IncomeCents),
			Expenses: core.FormatCents(p.ExpenseCents),
		})
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"groupBy": groupBy,
		"trends":  trends,
		"period":  periodResponse{StartDate: start, EndDate: end},
	})
}

// percentage returns part/total as a percentage rounded to one decimal
// place, or 0 when the total is zero.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(part).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	return ratio.InexactFloat64()
}
