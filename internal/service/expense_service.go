package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gathersplit/internal/calculator"
	"gathersplit/internal/models"
	"gathersplit/internal/storage"
)

// ExpenseService handles expense CRUD within a gathering.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

type expenseRequest struct {
	Description  string   `json:"description" validate:"required"`
	Amount       float64  `json:"amount" validate:"required,gt=0"`
	Category     string   `json:"category" validate:"required,oneof=food herb other"`
	IsMeat       bool     `json:"isMeat"`
	PaidByID     string   `json:"paidById" validate:"required"`
	Participants []string `json:"participants" validate:"required,min=1,dive,required"`
	Date         int64    `json:"date"`
}

type expenseResponse struct {
	ID           string   `json:"id"`
	GatheringID  string   `json:"gatheringId"`
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	Category     string   `json:"category"`
	IsMeat       bool     `json:"isMeat,omitempty"`
	PaidByID     string   `json:"paidById"`
	Participants []string `json:"participants"`
	Date         int64    `json:"date"`
	CreatedAt    int64    `json:"createdAt"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		GatheringID:  e.GatheringID,
		Description:  e.Description,
		Amount:       e.Amount,
		Category:     string(e.Category),
		IsMeat:       e.IsMeat,
		PaidByID:     e.PaidByID,
		Participants: e.Participants,
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
	}
}

// checkExpense validates an expense against its gathering: the payer and
// every declared participant must belong to the gathering, and the
// eligibility rule must leave at least one participant owing a share.
// Rejecting an empty eligible set here keeps the balance computation free of
// division-by-zero cases.
func (s *ExpenseService) checkExpense(r *http.Request, gathering *models.Gathering, expense *models.Expense) (int, error) {
	if err := expense.Validate(); err != nil {
		return http.StatusBadRequest, err
	}

	if !gathering.HasParticipant(expense.PaidByID) {
		return http.StatusBadRequest, fmt.Errorf("payer %s is not a participant of the gathering", expense.PaidByID)
	}
	for _, userID := range expense.Participants {
		if !gathering.HasParticipant(userID) {
			return http.StatusBadRequest, fmt.Errorf("participant %s is not in the gathering", userID)
		}
	}

	users, err := s.store.GetUsersByIDs(r.Context(), expense.Participants)
	if err != nil {
		return http.StatusInternalServerError, err
	}
	prefs := make(map[string]calculator.Participant, len(users))
	for id, user := range users {
		prefs[id] = calculator.Participant{
			ID:                 user.ID,
			IsVegan:            user.IsVegan,
			ParticipatesInHerb: user.ParticipatesInHerb,
		}
	}

	eligible := calculator.Eligible(calculator.Expense{
		Amount:       expense.Amount,
		Category:     string(expense.Category),
		IsMeat:       expense.IsMeat,
		PaidByID:     expense.PaidByID,
		Participants: expense.Participants,
	}, prefs)
	if len(eligible) == 0 {
		return http.StatusBadRequest, fmt.Errorf("no eligible participants: nobody in the declared list owes a share of this %s expense", expense.Category)
	}

	return 0, nil
}

// CreateExpense handles POST /gatherings/{id}/expenses.
func (s *ExpenseService) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	gathering, err := s.store.GetGathering(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	expense := &models.Expense{
		GatheringID:  gathering.ID,
		Description:  req.Description,
		Amount:       req.Amount,
		Category:     models.ExpenseCategory(req.Category),
		IsMeat:       req.IsMeat,
		PaidByID:     req.PaidByID,
		Participants: req.Participants,
		Date:         req.Date,
	}
	if status, err := s.checkExpense(r, gathering, expense); err != nil {
		respondError(w, status, err.Error())
		return
	}

	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		slog.Error("CreateExpense failed", "gathering_id", gathering.ID, "error", err)
		respondStoreError(w, err)
		return
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"gathering_id", gathering.ID,
		"amount", expense.Amount,
		"category", expense.Category,
	)
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// ListExpenses handles GET /gatherings/{id}/expenses.
func (s *ExpenseService) ListExpenses(w http.ResponseWriter, r *http.Request) {
	gathering, err := s.store.GetGathering(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	expenses, err := s.store.ListExpensesByGathering(r.Context(), gathering.ID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetExpense handles GET /expenses/{id}.
func (s *ExpenseService) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.store.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(expense))
}

// UpdateExpense handles PUT /expenses/{id}.
func (s *ExpenseService) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	expense, err := s.store.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	gathering, err := s.store.GetGathering(r.Context(), expense.GatheringID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	expense.Description = req.Description
	expense.Amount = req.Amount
	expense.Category = models.ExpenseCategory(req.Category)
	expense.IsMeat = req.IsMeat
	expense.PaidByID = req.PaidByID
	expense.Participants = req.Participants
	if req.Date != 0 {
		expense.Date = req.Date
	}

	if status, err := s.checkExpense(r, gathering, expense); err != nil {
		respondError(w, status, err.Error())
		return
	}

	if err := s.store.UpdateExpense(r.Context(), expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /expenses/{id}.
func (s *ExpenseService) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
