package event_bus

const (
	TransactionAddedType   EventType = "transaction.added"
	TransactionDeletedType EventType = "transaction.deleted"
	BudgetAddedType        EventType = "budget.added"
	BudgetUpdatedType      EventType = "budget.updated"
	BudgetDeletedType      EventType = "budget.deleted"
	SettingsChangedType    EventType = "settings.changed"
	ErrorSetType           EventType = "error.set"
	ErrorClearedType       EventType = "error.cleared"
)

// AllTypes lists every event the finance store publishes.
var AllTypes = []EventType{
	TransactionAddedType,
	TransactionDeletedType,
	BudgetAddedType,
	BudgetUpdatedType,
	BudgetDeletedType,
	SettingsChangedType,
	ErrorSetType,
	ErrorClearedType,
}

type TransactionAdded struct {
	ID       string
	Category string
	Amount   string
	Date     string
}

type TransactionDeleted struct {
	ID string
	// Found is false when the id was not present and the delete was a no-op.
	Found bool
}

type BudgetChanged struct {
	ID         string
	CategoryID string
	Month      int
	Year       int
	Found      bool
}

type SettingsChanged struct {
	Key   string
	Value string
}

type ErrorSet struct {
	Message string
}

type ErrorCleared struct {
	Message string
}
