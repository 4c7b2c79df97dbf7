package core

// The category catalog is compiled in. Any change to it is a coordinated
// redeploy; there is no stored or versioned catalog.

// IncomeCategories are the valid categories for income transactions.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investments",
	"Gifts",
	"Other Income",
}

// ExpenseCategories are the valid categories for expense transactions.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Shopping",
	"Personal Care",
	"Education",
	"Other Expenses",
}

// CategoriesFor returns the catalog partition for the given type.
func CategoriesFor(t TransactionType) []string {
	if t == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// InCatalog reports whether c appears anywhere in the catalog.
func InCatalog(c string) bool {
	return contains(IncomeCategories, c) || contains(ExpenseCategories, c)
}

// CategoryMatchesType reports whether c belongs to the partition for t.
func CategoryMatchesType(c string, t TransactionType) bool {
	return contains(CategoriesFor(t), c)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
