package calculator

import (
	"math"
	"testing"
)

// applyTransactions replays a settlement against a copy of the balances and
// returns the adjusted map.
func applyTransactions(balances map[string]float64, transactions []Transaction) map[string]float64 {
	adjusted := make(map[string]float64, len(balances))
	for userID, b := range balances {
		adjusted[userID] = b
	}
	for _, tx := range transactions {
		adjusted[tx.FromUserID] += tx.Amount
		adjusted[tx.ToUserID] -= tx.Amount
	}
	return adjusted
}

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]float64
		want     []Transaction
	}{
		{
			name:     "two debtors pay one creditor",
			balances: map[string]float64{"alice": 60, "bob": -30, "carol": -30},
			want: []Transaction{
				{FromUserID: "bob", ToUserID: "alice", Amount: 30},
				{FromUserID: "carol", ToUserID: "alice", Amount: 30},
			},
		},
		{
			name:     "largest creditor served first",
			balances: map[string]float64{"alice": 50, "bob": 30, "carol": -80},
			want: []Transaction{
				{FromUserID: "carol", ToUserID: "alice", Amount: 50},
				{FromUserID: "carol", ToUserID: "bob", Amount: 30},
			},
		},
		{
			name:     "single pair",
			balances: map[string]float64{"alice": 60, "carol": -60},
			want: []Transaction{
				{FromUserID: "carol", ToUserID: "alice", Amount: 60},
			},
		},
		{
			name:     "all settled yields no transactions",
			balances: map[string]float64{"alice": 0, "bob": 0},
			want:     nil,
		},
		{
			name:     "sub-cent residue is ignored",
			balances: map[string]float64{"alice": 0.004, "bob": -0.004},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlement(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transactions %v, want %d", len(got), got, len(tt.want))
			}
			for i, tx := range got {
				if tx != tt.want[i] {
					t.Errorf("transaction[%d] = %+v, want %+v", i, tx, tt.want[i])
				}
			}
		})
	}
}

func TestComputeSettlement_SettlesAllBalances(t *testing.T) {
	balances := map[string]float64{
		"a": 123.45,
		"b": -41.15,
		"c": -41.15,
		"d": -41.15,
		"e": 33.33,
		"f": -33.33,
	}

	transactions := ComputeSettlement(balances)

	adjusted := applyTransactions(balances, transactions)
	for userID, b := range adjusted {
		if math.Abs(b) > 0.01 {
			t.Errorf("balance[%s] = %v after settlement, want ~0", userID, b)
		}
	}

	// Never more transactions than non-zero participants minus one.
	nonZero := 0
	for _, b := range balances {
		if math.Abs(b) > 0.01 {
			nonZero++
		}
	}
	if len(transactions) > nonZero-1 {
		t.Errorf("emitted %d transactions for %d non-zero balances", len(transactions), nonZero)
	}
}

func TestComputeSettlement_Deterministic(t *testing.T) {
	// Equal amounts force the ID tie-break; map iteration order must not
	// leak into the output.
	balances := map[string]float64{"zoe": 25, "amy": 25, "bob": -25, "cal": -25}

	first := ComputeSettlement(balances)
	for i := 0; i < 10; i++ {
		again := ComputeSettlement(balances)
		if len(again) != len(first) {
			t.Fatalf("transaction count changed between runs: %d vs %d", len(again), len(first))
		}
		for i := range again {
			if again[i] != first[i] {
				t.Fatalf("transaction[%d] changed between runs: %+v vs %+v", i, again[i], first[i])
			}
		}
	}

	// Ties break on ascending user ID.
	if first[0].ToUserID != "amy" || first[0].FromUserID != "bob" {
		t.Errorf("unexpected first transaction %+v, want bob -> amy", first[0])
	}
}

func TestComputeSettlement_RoundsToCents(t *testing.T) {
	// 100 split three ways leaves repeating thirds.
	balances := map[string]float64{
		"a": 100 - 100.0/3,
		"b": -100.0 / 3,
		"c": -100.0 / 3,
	}

	for _, tx := range ComputeSettlement(balances) {
		if got := Round2(tx.Amount); got != tx.Amount {
			t.Errorf("transaction amount %v not rounded to cents", tx.Amount)
		}
	}
}

func TestComputeSettlement_UnbalancedInputTerminates(t *testing.T) {
	// Balances that do not sum to zero are a caller bug; the loop must
	// still terminate and settle what it can.
	balances := map[string]float64{"a": 100, "b": -40}

	transactions := ComputeSettlement(balances)
	if len(transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(transactions))
	}
	if transactions[0].Amount != 40 {
		t.Errorf("amount = %v, want 40", transactions[0].Amount)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.004, 10.0},
		{10.005, 10.01},
		{10.995, 11.0},
		{-10.005, -10.01},
		{33.333333, 33.33},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
