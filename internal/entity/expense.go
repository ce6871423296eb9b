package entity

import "time"

// Expense is one row of the fact table. Dimension references are surrogate
// keys; clients only ever see the resolved names via ExpenseRecord.
type Expense struct {
	ID              int64
	ExpenseDate     time.Time
	Amount          float64
	CategoryID      int64
	VendorID        int64
	PaymentMethodID int64
	Description     *string
	Qty             int64
	UnitPrice       *float64
}

// ExpenseRecord is a row of the expenses_denorm view: the fact row joined
// to its three dimension names.
type ExpenseRecord struct {
	ID                int64
	ExpenseDate       time.Time
	Amount            float64
	Description       *string
	Qty               int64
	UnitPrice         *float64
	CategoryName      string
	VendorName        string
	PaymentMethodName string
}

// ExpenseSearchCriteria holds the optional search filters. Nil/empty means
// the criterion is not applied; supplied criteria are AND-combined.
type ExpenseSearchCriteria struct {
	Query         string
	Category      string
	Vendor        string
	PaymentMethod string
	MinAmount     *float64
	MaxAmount     *float64
	StartDate     *time.Time
	EndDate       *time.Time
}

func (c ExpenseSearchCriteria) IsEmpty() bool {
	return c.Query == "" && c.Category == "" && c.Vendor == "" && c.PaymentMethod == "" &&
		c.MinAmount == nil && c.MaxAmount == nil && c.StartDate == nil && c.EndDate == nil
}
