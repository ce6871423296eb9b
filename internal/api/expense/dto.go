package expense

import (
	"CostTracker/internal/entity"
	"encoding/xml"
	"time"
)

// UpsertExpenseRequest is the payload for both POST and PUT: updates are a
// full replace of the mutable fields. amount may be omitted only when qty
// and unit_price are both present, in which case it is derived from them.
type UpsertExpenseRequest struct {
	ExpenseDate       string   `json:"expense_date" validate:"required,datetime=2006-01-02"`
	Amount            *float64 `json:"amount" validate:"required_without_all=Qty UnitPrice,omitempty,gte=0"`
	CategoryName      string   `json:"category_name" validate:"required,max=50"`
	VendorName        string   `json:"vendor_name" validate:"required,max=100"`
	PaymentMethodName string   `json:"payment_method_name" validate:"required,max=50"`
	Description       *string  `json:"description" validate:"omitempty,max=255"`
	Qty               *int64   `json:"qty" validate:"omitempty,gt=0"`
	UnitPrice         *float64 `json:"unit_price" validate:"omitempty,gte=0"`
}

type ExpenseResponse struct {
	ExpenseID         int64    `json:"expense_id" xml:"expense_id"`
	ExpenseDate       string   `json:"expense_date" xml:"expense_date"`
	Amount            float64  `json:"amount" xml:"amount"`
	Description       *string  `json:"description" xml:"description,omitempty"`
	Qty               int64    `json:"qty" xml:"qty"`
	UnitPrice         *float64 `json:"unit_price" xml:"unit_price,omitempty"`
	CategoryName      string   `json:"category_name" xml:"category_name"`
	VendorName        string   `json:"vendor_name" xml:"vendor_name"`
	PaymentMethodName string   `json:"payment_method_name" xml:"payment_method_name"`
}

type ExpenseEnvelope struct {
	XMLName xml.Name        `json:"-" xml:"response"`
	Data    ExpenseResponse `json:"data" xml:"data"`
}

type ExpenseListEnvelope struct {
	XMLName xml.Name          `json:"-" xml:"response"`
	Data    []ExpenseResponse `json:"data" xml:"data>expense"`
	Count   int64             `json:"count" xml:"count"`
}

func NewExpenseResponse(record entity.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:         record.ID,
		ExpenseDate:       record.ExpenseDate.Format(time.DateOnly),
		Amount:            record.Amount,
		Description:       record.Description,
		Qty:               record.Qty,
		UnitPrice:         record.UnitPrice,
		CategoryName:      record.CategoryName,
		VendorName:        record.VendorName,
		PaymentMethodName: record.PaymentMethodName,
	}
}
