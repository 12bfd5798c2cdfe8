package category

import "errors"

var ErrNoCategory = errors.New("Please select a category")

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

var expenseCategories = []Category{
	{ID: "food", Name: "Food & Dining", Kind: KindExpense},
	{ID: "transportation", Name: "Transportation", Kind: KindExpense},
	{ID: "housing", Name: "Housing & Rent", Kind: KindExpense},
	{ID: "utilities", Name: "Utilities", Kind: KindExpense},
	{ID: "entertainment", Name: "Entertainment", Kind: KindExpense},
	{ID: "shopping", Name: "Shopping", Kind: KindExpense},
	{ID: "healthcare", Name: "Healthcare", Kind: KindExpense},
	{ID: "education", Name: "Education", Kind: KindExpense},
	{ID: "personal", Name: "Personal Care", Kind: KindExpense},
	{ID: "travel", Name: "Travel", Kind: KindExpense},
	{ID: "debt", Name: "Debt Payment", Kind: KindExpense},
	{ID: "other_expense", Name: "Other Expense", Kind: KindExpense},
}

var incomeCategories = []Category{
	{ID: "income", Name: "Income", Kind: KindIncome},
	{ID: "salary", Name: "Salary", Kind: KindIncome},
	{ID: "freelance", Name: "Freelance", Kind: KindIncome},
	{ID: "investment", Name: "Investment", Kind: KindIncome},
	{ID: "gift", Name: "Gift", Kind: KindIncome},
	{ID: "other_income", Name: "Other Income", Kind: KindIncome},
}

// Catalog is a fixed, ordered list of categories.
type Catalog []Category

// Transactions is the catalog offered when recording a transaction: income kinds first, then expenses.
func Transactions() Catalog {
	c := make(Catalog, 0, len(incomeCategories)+len(expenseCategories))
	c = append(c, incomeCategories...)
	return append(c, expenseCategories...)
}

// Budgets is the catalog offered for budgets. Only expense kinds can be budgeted.
func Budgets() Catalog {
	return append(Catalog(nil), expenseCategories...)
}

func (c Catalog) Find(id string) (Category, bool) {
	for _, cat := range c {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// DisplayName returns the catalog name for id, or id itself when it is not in the catalog.
func (c Catalog) DisplayName(id string) string {
	if cat, ok := c.Find(id); ok {
		return cat.Name
	}
	return id
}

func (c Catalog) OfKind(kind Kind) Catalog {
	var out Catalog
	for _, cat := range c {
		if cat.Kind == kind {
			out = append(out, cat)
		}
	}
	return out
}
