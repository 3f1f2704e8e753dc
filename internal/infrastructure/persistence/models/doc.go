// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel, TrackableModel)
// - identity.go: users, roles and their join tables
// - client.go: clients, contracts, contract items and sales invoices
// - budget.go, project.go: budgets, projects and budget assignments
// - employee.go: employees, rates and documents
// - dict.go: currencies, document types and dimensions
// - audit.go: audit log entries
//
// Many-to-many associations are plain join table models instead of array
// columns so the same models run on PostgreSQL and SQLite.
package models
