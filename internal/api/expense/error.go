package expense

import "CostTracker/pkg/response"

var (
	ErrExpenseNotFound = response.NewError(404, "expense not found")
	ErrAmountMissing   = response.NewError(422, "amount is required when qty and unit_price are not both provided")
	ErrCreateExpense   = response.NewError(500, "failed to create expense")
	ErrUpdateExpense   = response.NewError(500, "failed to update expense")
	ErrDeleteExpense   = response.NewError(500, "failed to delete expense")
	ErrListExpenses    = response.NewError(500, "failed to list expenses")
)
