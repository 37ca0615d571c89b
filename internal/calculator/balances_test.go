package calculator

import (
	"math"
	"testing"
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []Participant
		expenses     []Expense
		wantErr      bool
		want         map[string]float64
	}{
		{
			name: "one shared expense splits equally",
			participants: []Participant{
				{ID: "alice"}, {ID: "bob"}, {ID: "carol"},
			},
			expenses: []Expense{
				{Amount: 90, Category: "other", PaidByID: "alice", Participants: []string{"alice", "bob", "carol"}},
			},
			want: map[string]float64{"alice": 60, "bob": -30, "carol": -30},
		},
		{
			name: "vegan excluded from meat expense",
			participants: []Participant{
				{ID: "alice"},
				{ID: "bob", IsVegan: true},
			},
			expenses: []Expense{
				{Amount: 100, Category: "food", IsMeat: true, PaidByID: "alice", Participants: []string{"alice", "bob"}},
			},
			// Alice is the only eligible consumer: +100 credit, -100 share.
			want: map[string]float64{"alice": 0, "bob": 0},
		},
		{
			name: "vegan included in non-meat food expense",
			participants: []Participant{
				{ID: "alice"},
				{ID: "bob", IsVegan: true},
			},
			expenses: []Expense{
				{Amount: 40, Category: "food", PaidByID: "alice", Participants: []string{"alice", "bob"}},
			},
			want: map[string]float64{"alice": 20, "bob": -20},
		},
		{
			name: "herb expense shared only by opted-in participants",
			participants: []Participant{
				{ID: "alice"},
				{ID: "bob"},
				{ID: "carol", ParticipatesInHerb: true},
			},
			expenses: []Expense{
				{Amount: 60, Category: "herb", PaidByID: "alice", Participants: []string{"alice", "bob", "carol"}},
			},
			want: map[string]float64{"alice": 60, "bob": 0, "carol": -60},
		},
		{
			name: "excluded payer keeps the full credit",
			participants: []Participant{
				{ID: "vera", IsVegan: true},
				{ID: "bob"},
				{ID: "carol"},
			},
			expenses: []Expense{
				{Amount: 60, Category: "food", IsMeat: true, PaidByID: "vera", Participants: []string{"vera", "bob", "carol"}},
			},
			want: map[string]float64{"vera": 60, "bob": -30, "carol": -30},
		},
		{
			name: "multiple expenses accumulate",
			participants: []Participant{
				{ID: "alice"}, {ID: "bob"},
			},
			expenses: []Expense{
				{Amount: 30, Category: "other", PaidByID: "alice", Participants: []string{"alice", "bob"}},
				{Amount: 10, Category: "other", PaidByID: "bob", Participants: []string{"alice", "bob"}},
			},
			want: map[string]float64{"alice": 10, "bob": -10},
		},
		{
			name:         "no participants is an error",
			participants: []Participant{},
			expenses:     nil,
			wantErr:      true,
		},
		{
			name: "all-vegan meat expense is an error",
			participants: []Participant{
				{ID: "alice", IsVegan: true},
				{ID: "bob", IsVegan: true},
			},
			expenses: []Expense{
				{Amount: 50, Category: "food", IsMeat: true, PaidByID: "alice", Participants: []string{"alice", "bob"}},
			},
			wantErr: true,
		},
		{
			name: "herb expense with no opted-in participants is an error",
			participants: []Participant{
				{ID: "alice"}, {ID: "bob"},
			},
			expenses: []Expense{
				{Amount: 20, Category: "herb", PaidByID: "alice", Participants: []string{"alice", "bob"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBalances(tt.participants, tt.expenses)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ComputeBalances() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if len(got) != len(tt.want) {
				t.Errorf("got %d balances, want %d", len(got), len(tt.want))
			}
			for userID, want := range tt.want {
				if math.Abs(got[userID]-want) > 0.01 {
					t.Errorf("balance[%s] = %v, want %v", userID, got[userID], want)
				}
			}

			// Balances must always sum to zero.
			var sum float64
			for _, b := range got {
				sum += b
			}
			if math.Abs(sum) > 0.01 {
				t.Errorf("balances sum to %v, want 0", sum)
			}
		})
	}
}

func TestComputeBalances_DoesNotMutateInputs(t *testing.T) {
	participants := []Participant{{ID: "alice"}, {ID: "bob"}}
	expenses := []Expense{
		{Amount: 50, Category: "other", PaidByID: "alice", Participants: []string{"alice", "bob"}},
	}

	first, err := ComputeBalances(participants, expenses)
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}
	second, err := ComputeBalances(participants, expenses)
	if err != nil {
		t.Fatalf("ComputeBalances failed on second call: %v", err)
	}

	for userID, want := range first {
		if second[userID] != want {
			t.Errorf("second call: balance[%s] = %v, want %v", userID, second[userID], want)
		}
	}
	if expenses[0].Amount != 50 || len(expenses[0].Participants) != 2 {
		t.Error("input expense was mutated")
	}
}

func TestEligible(t *testing.T) {
	prefs := map[string]Participant{
		"omni":  {ID: "omni"},
		"vegan": {ID: "vegan", IsVegan: true},
		"herby": {ID: "herby", ParticipatesInHerb: true},
	}

	tests := []struct {
		name    string
		expense Expense
		want    []string
	}{
		{
			name:    "other category keeps everyone",
			expense: Expense{Category: "other", Participants: []string{"omni", "vegan", "herby"}},
			want:    []string{"omni", "vegan", "herby"},
		},
		{
			name:    "meat food drops vegans",
			expense: Expense{Category: "food", IsMeat: true, Participants: []string{"omni", "vegan"}},
			want:    []string{"omni"},
		},
		{
			name:    "vegetarian food keeps vegans",
			expense: Expense{Category: "food", Participants: []string{"omni", "vegan"}},
			want:    []string{"omni", "vegan"},
		},
		{
			name:    "herb keeps only opted-in",
			expense: Expense{Category: "herb", Participants: []string{"omni", "vegan", "herby"}},
			want:    []string{"herby"},
		},
		{
			name:    "unknown participant treated as zero-value prefs",
			expense: Expense{Category: "herb", Participants: []string{"stranger", "herby"}},
			want:    []string{"herby"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eligible(tt.expense, prefs)
			if len(got) != len(tt.want) {
				t.Fatalf("Eligible() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Eligible()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}
