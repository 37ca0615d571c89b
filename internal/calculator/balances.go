// Package calculator implements the pure balance and settlement math for a
// single gathering. It is stateless, performs no I/O, and never mutates its
// inputs, so it is safe to call concurrently for different gatherings.
package calculator

import "fmt"

// Participant carries the preference flags that drive expense eligibility.
type Participant struct {
	ID                 string
	IsVegan            bool
	ParticipatesInHerb bool
}

// Expense represents an expense with the minimal information needed for
// balance calculations.
type Expense struct {
	Amount       float64
	Category     string // "food", "herb" or "other"
	IsMeat       bool   // meaningful only when Category is "food"
	PaidByID     string
	Participants []string // user IDs declared on the expense
}

const (
	categoryFood = "food"
	categoryHerb = "herb"
)

// Eligible filters the expense's declared participants down to those who
// actually owe a share:
//
//   - meat-based food expenses exclude vegan participants
//   - herb expenses include only participants who opted in
//   - everything else is shared by all declared participants
//
// Participants missing from prefs are treated as having zero-value
// preferences: not vegan, not participating in herb.
func Eligible(expense Expense, prefs map[string]Participant) []string {
	eligible := make([]string, 0, len(expense.Participants))
	for _, userID := range expense.Participants {
		p := prefs[userID]
		if expense.Category == categoryFood && expense.IsMeat && p.IsVegan {
			continue
		}
		if expense.Category == categoryHerb && !p.ParticipatesInHerb {
			continue
		}
		eligible = append(eligible, userID)
	}
	return eligible
}

// ComputeBalances computes each participant's net balance for one gathering.
// Positive means the participant is owed money, negative means they owe.
//
// Per expense, the payer is credited the full amount and every eligible
// participant (payer included, if eligible) is debited an equal share. A
// payer excluded by the eligibility rule still receives the full credit with
// no offsetting self-debit: they fronted money they did not consume and must
// be reimbursed in full.
//
// An expense whose eligible set is empty after filtering is rejected with an
// error rather than dividing by zero. The service layer rejects such
// expenses at creation time, so hitting this here indicates stored data that
// predates a preference change.
//
// Invariant: when every expense has at least one eligible participant, the
// returned balances sum to zero (within floating-point tolerance).
func ComputeBalances(participants []Participant, expenses []Expense) (map[string]float64, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("gathering must have at least one participant")
	}

	prefs := make(map[string]Participant, len(participants))
	balances := make(map[string]float64, len(participants))
	for _, p := range participants {
		prefs[p.ID] = p
		balances[p.ID] = 0
	}

	for _, expense := range expenses {
		eligible := Eligible(expense, prefs)
		if len(eligible) == 0 {
			return nil, fmt.Errorf("expense paid by %s has no eligible participants", expense.PaidByID)
		}

		share := expense.Amount / float64(len(eligible))

		balances[expense.PaidByID] += expense.Amount
		for _, userID := range eligible {
			balances[userID] -= share
		}
	}

	return balances, nil
}
