// Package models defines the core domain models for Gathersplit.
//
// # Models
//
//   - User: a person who can join gatherings, with dietary/participation
//     preferences that drive expense eligibility
//   - Gathering: a named event scoping a set of participants and expenses;
//     each gathering is settled independently
//   - Expense: a cost fronted by one participant and shared among the
//     participants declared on it
//
// # Design Principles
//
//  1. **Relationships by ID**: models reference each other via ID strings,
//     never pointers, to avoid circular references and keep them trivially
//     serializable.
//  2. **Immutable during calculation**: the calculator package receives
//     snapshots of these models and never mutates them.
//  3. **Derived values are not models**: balances and settlement
//     transactions are computed on demand by internal/calculator and never
//     persisted.
package models
