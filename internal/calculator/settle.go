package calculator

import (
	"math"
	"sort"
)

// Transaction is a single payment instruction from a debtor to a creditor.
type Transaction struct {
	FromUserID string
	ToUserID   string
	Amount     float64
}

// epsilon is the cutoff below which a residual balance counts as settled.
// It also prevents the matching loop from spinning on floating-point noise.
const epsilon = 0.01

// Round2 rounds a monetary amount to two decimal places, half away from
// zero. Applied at output boundaries only; intermediate math stays unrounded.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// party is one side of the settlement matching, always holding a positive
// amount regardless of whether it represents a credit or a debt.
type party struct {
	id     string
	amount float64
}

// ComputeSettlement produces a list of transactions that settles the given
// balances, matching the largest creditor against the largest debtor until
// both sides are exhausted.
//
// This greedy largest-first matching is a heuristic, not a minimizer: the
// exact minimum-transaction-count problem is NP-hard. It emits at most
// len(creditors)+len(debtors)-1 transactions, never more than one fewer than
// the number of participants with non-zero balances.
//
// Ties on amount break on ascending user ID so output is deterministic. If
// the balances do not sum to zero (a caller bug), the loop stops once one
// side empties and the residual is left unmatched.
func ComputeSettlement(balances map[string]float64) []Transaction {
	var creditors, debtors []party
	for userID, balance := range balances {
		switch {
		case balance > epsilon:
			creditors = append(creditors, party{id: userID, amount: balance})
		case balance < -epsilon:
			debtors = append(debtors, party{id: userID, amount: -balance})
		}
	}

	sortPartiesDesc(creditors)
	sortPartiesDesc(debtors)

	var transactions []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(debtor.amount, creditor.amount)
		transactions = append(transactions, Transaction{
			FromUserID: debtor.id,
			ToUserID:   creditor.id,
			Amount:     Round2(amount),
		})

		debtor.amount -= amount
		creditor.amount -= amount

		if debtor.amount <= epsilon {
			i++
		}
		if creditor.amount <= epsilon {
			j++
		}
	}

	return transactions
}

func sortPartiesDesc(parties []party) {
	sort.Slice(parties, func(a, b int) bool {
		if parties[a].amount != parties[b].amount {
			return parties[a].amount > parties[b].amount
		}
		return parties[a].id < parties[b].id
	})
}
