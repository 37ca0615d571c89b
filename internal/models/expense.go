package models

import "errors"

// ExpenseCategory classifies an expense for eligibility filtering.
type ExpenseCategory string

const (
	// CategoryFood marks food expenses; combined with IsMeat it excludes
	// vegan participants from the share.
	CategoryFood ExpenseCategory = "food"

	// CategoryHerb marks herb expenses, shared only by participants who
	// opted in via ParticipatesInHerb.
	CategoryHerb ExpenseCategory = "herb"

	// CategoryOther marks expenses shared by all declared participants.
	CategoryOther ExpenseCategory = "other"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidCategory  = errors.New("category must be one of food, herb, other")
	ErrMissingPayer     = errors.New("paid_by_id required")
	ErrNoExpenseSharers = errors.New("expense must declare at least one participant")
)

// Valid reports whether the category is one of the known values.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryHerb, CategoryOther:
		return true
	}
	return false
}

// Expense represents a cost fronted by one participant of a gathering and
// shared among the participants declared on it.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GatheringID is the gathering this expense belongs to.
	GatheringID string

	// Description is a short human-readable label (e.g. "Groceries").
	Description string

	// Amount is the positive monetary amount, two-decimal currency
	// semantics.
	Amount float64

	// Category drives the eligibility rule applied when splitting.
	Category ExpenseCategory

	// IsMeat flags meat-based food; meaningful only when Category is food.
	IsMeat bool

	// PaidByID is the participant who fronted the money. The payer is
	// credited the full amount regardless of their own eligibility.
	PaidByID string

	// Participants is the list of user IDs nominally included in this
	// expense's cost-sharing, a subset of the gathering's participants.
	Participants []string

	// Date is the Unix timestamp of when the expense occurred.
	Date int64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Validate checks structural invariants that do not require storage lookups.
// Eligibility (whether any declared participant actually owes a share) is
// checked separately at the service boundary because it needs user
// preferences.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if e.PaidByID == "" {
		return ErrMissingPayer
	}
	if len(e.Participants) == 0 {
		return ErrNoExpenseSharers
	}
	return nil
}
