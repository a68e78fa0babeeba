package models

var expenseCategories = []string{
	"food",
	"transport",
	"housing",
	"health",
	"education",
	"leisure",
	"shopping",
	"bills",
	"debt",
	"other",
}

var incomeCategories = []string{
	"salary",
	"freelance",
	"investment",
	"gift",
	"refund",
	"other",
}

// Categories returns the fixed vocabulary for a transaction type.
func Categories(t TransactionType) []string {
	switch t {
	case TransactionIncome:
		return append([]string(nil), incomeCategories...)
	case TransactionExpense:
		return append([]string(nil), expenseCategories...)
	default:
		return nil
	}
}

func ValidCategory(t TransactionType, category string) bool {
	for _, c := range Categories(t) {
		if c == category {
			return true
		}
	}
	return false
}
