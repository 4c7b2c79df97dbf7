package core

import "testing"

func TestCatalogShape(t *testing.T) {
	if len(IncomeCategories) != 5 {
		t.Fatalf("expected 5 income categories, got %d", len(IncomeCategories))
	}
	if len(ExpenseCategories) != 10 {
		t.Fatalf("expected 10 expense categories, got %d", len(ExpenseCategories))
	}
}

func TestCategoryMembership(t *testing.T) {
	if !InCatalog("Salary") || !InCatalog("Food & Dining") {
		t.Fatal("known categories missing from catalog")
	}
	if InCatalog("Lottery") {
		t.Fatal("unknown category reported in catalog")
	}
	if !CategoryMatchesType("Salary", Income) {
		t.Fatal("Salary should match income")
	}
	if CategoryMatchesType("Salary", Expense) {
		t.Fatal("Salary should not match expense")
	}
	if !CategoryMatchesType("Healthcare", Expense) {
		t.Fatal("Healthcare should match expense")
	}
}
