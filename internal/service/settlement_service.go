package service

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gathersplit/internal/calculator"
	"gathersplit/internal/storage"
)

// SettlementService exposes the derived views of a gathering: per-user
// balances and the transactions that settle them. Nothing here is persisted;
// every request recomputes from the stored expenses and the participants'
// current preferences.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

type balancesResponse struct {
	GatheringID string             `json:"gatheringId"`
	Balances    map[string]float64 `json:"balances"`
}

type transactionResponse struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
}

type settlementResponse struct {
	GatheringID  string                `json:"gatheringId"`
	Transactions []transactionResponse `json:"transactions"`
}

// computeBalances loads a gathering and its expenses and runs the balance
// computation with the participants' current preferences. A calculation
// failure (an expense left with no eligible participants by a later
// preference change) is reported as 422; expenses are rejected at creation
// time, so only drifted data can reach that path.
func (s *SettlementService) computeBalances(w http.ResponseWriter, r *http.Request, gatheringID string) (map[string]float64, bool) {
	gathering, err := s.store.GetGathering(r.Context(), gatheringID)
	if err != nil {
		respondStoreError(w, err)
		return nil, false
	}

	users, err := s.store.GetUsersByIDs(r.Context(), gathering.Participants)
	if err != nil {
		respondStoreError(w, err)
		return nil, false
	}
	participants := make([]calculator.Participant, 0, len(gathering.Participants))
	for _, id := range gathering.Participants {
		p := calculator.Participant{ID: id}
		if user, ok := users[id]; ok {
			p.IsVegan = user.IsVegan
			p.ParticipatesInHerb = user.ParticipatesInHerb
		}
		participants = append(participants, p)
	}

	stored, err := s.store.ListExpensesByGathering(r.Context(), gathering.ID)
	if err != nil {
		respondStoreError(w, err)
		return nil, false
	}
	expenses := make([]calculator.Expense, len(stored))
	for i, e := range stored {
		expenses[i] = calculator.Expense{
			Amount:       e.Amount,
			Category:     string(e.Category),
			IsMeat:       e.IsMeat,
			PaidByID:     e.PaidByID,
			Participants: e.Participants,
		}
	}

	balances, err := calculator.ComputeBalances(participants, expenses)
	if err != nil {
		slog.Warn("Balance computation failed", "gathering_id", gatheringID, "error", err)
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	return balances, true
}

// GetBalances handles GET /gatherings/{id}/balances.
func (s *SettlementService) GetBalances(w http.ResponseWriter, r *http.Request) {
	gatheringID := chi.URLParam(r, "id")
	balances, ok := s.computeBalances(w, r, gatheringID)
	if !ok {
		return
	}

	rounded := make(map[string]float64, len(balances))
	for id, amount := range balances {
		rounded[id] = calculator.Round2(amount)
	}
	respondJSON(w, http.StatusOK, balancesResponse{GatheringID: gatheringID, Balances: rounded})
}

// GetSettlement handles GET /gatherings/{id}/settlement.
func (s *SettlementService) GetSettlement(w http.ResponseWriter, r *http.Request) {
	gatheringID := chi.URLParam(r, "id")
	balances, ok := s.computeBalances(w, r, gatheringID)
	if !ok {
		return
	}

	var residual float64
	for _, amount := range balances {
		residual += amount
	}
	if math.Abs(residual) > 0.01 {
		slog.Warn("Balances do not sum to zero", "gathering_id", gatheringID, "residual", residual)
	}

	transactions := calculator.ComputeSettlement(balances)
	resp := settlementResponse{
		GatheringID:  gatheringID,
		Transactions: make([]transactionResponse, len(transactions)),
	}
	for i, t := range transactions {
		resp.Transactions[i] = transactionResponse{
			FromUserID: t.FromUserID,
			ToUserID:   t.ToUserID,
			Amount:     t.Amount,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}
