package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"smartbudget/internal/core"
)

// Sort keys accepted by the list endpoint, mapped to real column names.
// Anything not in this map never reaches the SQL text.
var sortColumns = map[string]string{
	"date":      "date",
	"amount":    "amount_cents",
	"category":  "category",
	"createdAt": "created_at",
}

const (
	DefaultSortBy    = "date"
	DefaultSortOrder = "desc"
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// ValidSortBy reports whether key is an accepted sort field.
func ValidSortBy(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

type (
	// TransactionFilter holds the optional list predicates. Zero values mean
	// "no constraint"; all set predicates are ANDed.
	TransactionFilter struct {
		Type      string
		Category  string
		StartDate string
		EndDate   string
	}

	// ListParams is a validated page request.
	ListParams struct {
		Filter    TransactionFilter
		Page      int
		Limit     int
		SortBy    string
		SortOrder string
	}
)

const transactionColumns = `id, user_id, type, amount_cents, category, date, description, source_vendor, created_at, updated_at`

// CreateTransaction inserts a row for the given owner and returns it.
func (s *Store) CreateTransaction(ctx context.Context, userID int64, in core.NewTransaction) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, type, amount_cents, category, date, description, source_vendor)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+transactionColumns,
		userID, string(in.Type), in.AmountCents, in.Category, in.Date,
		nullString(in.Description), nullString(in.SourceVendor),
	)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

// ListTransactions returns one page of the owner's transactions plus the
// total row count for the filter, for pagination metadata.
func (s *Store) ListTransactions(ctx context.Context, userID int64, p ListParams) ([]core.Transaction, int, error) {
	where, args := buildFilter(userID, p.Filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM transactions WHERE " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	column, ok := sortColumns[p.SortBy]
	if !ok {
		column = sortColumns[DefaultSortBy]
	}
	direction := "DESC"
	if strings.EqualFold(p.SortOrder, "asc") {
		direction = "ASC"
	}

	// Tie-break on id so pagination stays stable when the primary sort key
	// has duplicates.
	dataQuery := fmt.Sprintf(
		"SELECT %s FROM transactions WHERE %s ORDER BY %s %s, id DESC LIMIT ? OFFSET ?",
		transactionColumns, where, column, direction,
	)
	offset := (p.Page - 1) * p.Limit
	rows, err := s.db.QueryContext(ctx, dataQuery, append(args, p.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, total, nil
}

// UpdateTransaction replaces the row matched by (id, owner). A missing row
// and a row owned by someone else both return ErrNotFound.
func (s *Store) UpdateTransaction(ctx context.Context, userID, id int64, in core.NewTransaction) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE transactions
		SET type = ?, amount_cents = ?, category = ?, date = ?, description = ?, source_vendor = ?,
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ? AND user_id = ?
		RETURNING `+transactionColumns,
		string(in.Type), in.AmountCents, in.Category, in.Date,
		nullString(in.Description), nullString(in.SourceVendor),
		id, userID,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

// DeleteTransaction removes the row matched by (id, owner).
func (s *Store) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// buildFilter composes the WHERE clause as an ordered predicate list with
// positional bind values. The owner predicate always comes first and user
// input never enters the SQL text.
func buildFilter(userID int64, f TransactionFilter) (string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, f.Type)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.StartDate != "" {
		conds = append(conds, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "date <= ?")
		args = append(args, f.EndDate)
	}

	return strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t            core.Transaction
		description  sql.NullString
		sourceVendor sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Type, &t.AmountCents, &t.Category, &t.Date,
		&description, &sourceVendor, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return core.Transaction{}, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	if sourceVendor.Valid {
		t.SourceVendor = &sourceVendor.String
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
