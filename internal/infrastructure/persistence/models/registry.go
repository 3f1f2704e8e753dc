package models

// All returns every persistence model, parents before children
func All() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&UserRoleModel{},
		&RolePermissionModel{},
		&CurrencyModel{},
		&DocumentTypeModel{},
		&DimensionModel{},
		&ClientModel{},
		&ContractModel{},
		&ContractItemModel{},
		&ContractItemDimensionModel{},
		&SalesInvoiceModel{},
		&BudgetModel{},
		&EmployeeModel{},
		&RateModel{},
		&DocumentModel{},
		&ProjectModel{},
		&ProjectMemberModel{},
		&BudgetAssignmentModel{},
		&AuditEntryModel{},
	}
}
