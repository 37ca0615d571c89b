// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"gathersplit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer. The store supplies consistent
// snapshots; all balance and settlement math happens outside it in
// internal/calculator.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID.
	// Users that don't exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers retrieves all users ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser updates name, alias and preference flags of an existing user.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, id string) error

	// CreateGathering persists a new gathering and its participant list.
	// The gathering's ID and CreatedAt are populated by the store.
	CreateGathering(ctx context.Context, gathering *models.Gathering) error

	// GetGathering retrieves a gathering by ID, including participants.
	GetGathering(ctx context.Context, id string) (*models.Gathering, error)

	// ListGatherings retrieves all gatherings ordered by date, newest first.
	ListGatherings(ctx context.Context) ([]*models.Gathering, error)

	// UpdateGathering replaces an existing gathering and its participant list.
	UpdateGathering(ctx context.Context, gathering *models.Gathering) error

	// DeleteGathering removes a gathering and, transitively, its expenses.
	DeleteGathering(ctx context.Context, id string) error

	// CreateExpense persists a new expense and its participant list.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including participants.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByGathering retrieves all expenses of one gathering.
	ListExpensesByGathering(ctx context.Context, gatheringID string) ([]*models.Expense, error)

	// UpdateExpense replaces an existing expense and its participant list.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
