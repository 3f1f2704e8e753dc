package shared

// Activation is the soft-delete flag shared by clients, contracts, budgets,
// projects and employees. Deactivated records stay in the database and are
// hidden from the default list views.
type Activation struct {
	IsActive bool
}

// NewActivation returns an active flag
func NewActivation() Activation {
	return Activation{IsActive: true}
}

// Activate marks the record active
func (a *Activation) Activate() error {
	if a.IsActive {
		return NewDomainError("ALREADY_ACTIVE", "Record is already active")
	}
	a.IsActive = true
	return nil
}

// Deactivate marks the record inactive
func (a *Activation) Deactivate() error {
	if !a.IsActive {
		return NewDomainError("ALREADY_INACTIVE", "Record is already inactive")
	}
	a.IsActive = false
	return nil
}

// IsInactive reports whether the record is deactivated
func (a *Activation) IsInactive() bool {
	return !a.IsActive
}
