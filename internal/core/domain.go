package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// User is a registered account. PasswordHash never leaves the
	// auth/storage layers.
	User struct {
		ID           int64
		Email        string
		PasswordHash string
		CreatedAt    string
		UpdatedAt    string
	}

	// Transaction is a persisted income or expense row, always owned by
	// exactly one user.
	Transaction struct {
		ID           int64
		UserID       int64
		Type         TransactionType
		AmountCents  int64
		Category     string
		Date         string // YYYY-MM-DD
		Description  *string
		SourceVendor *string
		CreatedAt    string
		UpdatedAt    string
	}

	// NewTransaction holds validated input ready for insert or update.
	NewTransaction struct {
		Type         TransactionType
		AmountCents  int64
		Category     string
		Date         string
		Description  *string
		SourceVendor *string
	}

	// TransactionDraft is raw, unvalidated client input. Amount carries the
	// original numeric literal so precision checks see exactly what the
	// client sent.
	TransactionDraft struct {
		Type         string
		Amount       string
		Category     string
		Date         string
		Description  *string
		SourceVendor *string
	}

	// FieldError describes a single validation failure.
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
)

// ValidType reports whether t is one of the two known transaction types.
func ValidType(t string) bool {
	return t == string(Income) || t == string(Expense)
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Validate checks every field of the draft and collects all failures rather
// than stopping at the first. On success it returns the normalized input.
func (d TransactionDraft) Validate() (NewTransaction, []FieldError) {
	var errs []FieldError

	if d.Type == "" {
		errs = append(errs, FieldError{Field: "type", Message: "Transaction type is required"})
	} else if !ValidType(d.Type) {
		errs = append(errs, FieldError{Field: "type", Message: `Transaction type must be either "income" or "expense"`})
	}

	var cents int64
	if d.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "Amount is required"})
	} else {
		var err error
		cents, err = ParseAmount(d.Amount)
		switch {
		case errors.Is(err, errAmountNotNumber):
			errs = append(errs, FieldError{Field: "amount", Message: "Amount must be a number"})
		case errors.Is(err, errAmountNotPositive):
			errs = append(errs, FieldError{Field: "amount", Message: "Amount must be greater than 0"})
		case errors.Is(err, errAmountTooPrecise):
			errs = append(errs, FieldError{Field: "amount", Message: "Amount can have maximum 2 decimal places"})
		}
	}

	if d.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "Category is required"})
	} else if !InCatalog(d.Category) {
		errs = append(errs, FieldError{
			Field:   "category",
			Message: fmt.Sprintf("Category %q is not valid. Please use one of the predefined categories.", d.Category),
		})
	} else if ValidType(d.Type) && !CategoryMatchesType(d.Category, TransactionType(d.Type)) {
		errs = append(errs, FieldError{
			Field:   "category",
			Message: fmt.Sprintf("Category %q is not valid for %s transactions", d.Category, d.Type),
		})
	}

	if d.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "Date is required"})
	} else if !ValidDate(d.Date) {
		errs = append(errs, FieldError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return NewTransaction{}, errs
	}

	return NewTransaction{
		Type:         TransactionType(d.Type),
		AmountCents:  cents,
		Category:     d.Category,
		Date:         d.Date,
		Description:  d.Description,
		SourceVendor: d.SourceVendor,
	}, nil
}
