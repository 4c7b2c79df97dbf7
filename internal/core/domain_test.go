package core

import "testing"

func validDraft() TransactionDraft {
	return TransactionDraft{
		Type:     "expense",
		Amount:   "19.99",
		Category: "Food & Dining",
		Date:     "2024-03-01",
	}
}

func TestTransactionDraftValidateOK(t *testing.T) {
	in, errs := validDraft().Validate()
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if in.Type != Expense || in.AmountCents != 1999 || in.Category != "Food & Dining" || in.Date != "2024-03-01" {
		t.Fatalf("unexpected normalized input: %+v", in)
	}
}

func TestTransactionDraftValidateFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TransactionDraft)
		field  string
	}{
		{"missing type", func(d *TransactionDraft) { d.Type = "" }, "type"},
		{"bad type", func(d *TransactionDraft) { d.Type = "transfer" }, "type"},
		{"missing amount", func(d *TransactionDraft) { d.Amount = "" }, "amount"},
		{"amount not a number", func(d *TransactionDraft) { d.Amount = "abc" }, "amount"},
		{"zero amount", func(d *TransactionDraft) { d.Amount = "0" }, "amount"},
		{"negative amount", func(d *TransactionDraft) { d.Amount = "-3.50" }, "amount"},
		{"three decimals", func(d *TransactionDraft) { d.Amount = "1.234" }, "amount"},
		{"missing category", func(d *TransactionDraft) { d.Category = "" }, "category"},
		{"unknown category", func(d *TransactionDraft) { d.Category = "Lottery" }, "category"},
		{"category wrong type", func(d *TransactionDraft) { d.Category = "Salary" }, "category"},
		{"missing date", func(d *TransactionDraft) { d.Date = "" }, "date"},
		{"bad date format", func(d *TransactionDraft) { d.Date = "01-03-2024" }, "date"},
		{"impossible date", func(d *TransactionDraft) { d.Date = "2024-02-31" }, "date"},
	}
	for _, tc := range cases {
		d := validDraft()
		tc.mutate(&d)
		_, errs := d.Validate()
		if len(errs) == 0 {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
		found := false
		for _, e := range errs {
			if e.Field == tc.field {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected error on field %q, got %v", tc.name, tc.field, errs)
		}
	}
}

func TestTransactionDraftCollectsAllErrors(t *testing.T) {
	d := TransactionDraft{} // everything missing
	_, errs := d.Validate()
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors (type, amount, category, date), got %d: %v", len(errs), errs)
	}
}

func TestValidDate(t *testing.T) {
	good := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	bad := []string{"2023-02-29", "2024-13-01", "2024-1-01", "20240101", "not-a-date"}
	for _, s := range good {
		if !ValidDate(s) {
			t.Fatalf("%q: expected valid", s)
		}
	}
	for _, s := range bad {
		if ValidDate(s) {
			t.Fatalf("%q: expected invalid", s)
		}
	}
}
