package expenseRepository

import (
	"CostTracker/internal/entity"
	"strings"
	"testing"
	"time"
)

func float64Ptr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestBuildSearchFilter(t *testing.T) {
	tests := []struct {
		name        string
		criteria    entity.ExpenseSearchCriteria
		wantClauses []string
		wantArgs    map[string]interface{}
	}{
		{
			name:        "no criteria produces no filter",
			criteria:    entity.ExpenseSearchCriteria{},
			wantClauses: nil,
			wantArgs:    map[string]interface{}{},
		},
		{
			name: "free text query searches description, vendor and category",
			criteria: entity.ExpenseSearchCriteria{
				Query: "dinner",
			},
			wantClauses: []string{
				"(description ILIKE :q OR vendor_name ILIKE :q OR category_name ILIKE :q)",
			},
			wantArgs: map[string]interface{}{"q": "%dinner%"},
		},
		{
			name: "amount range",
			criteria: entity.ExpenseSearchCriteria{
				MinAmount: float64Ptr(100),
				MaxAmount: float64Ptr(200),
			},
			wantClauses: []string{
				"amount >= :min_amount",
				"amount <= :max_amount",
			},
			wantArgs: map[string]interface{}{
				"min_amount": float64(100),
				"max_amount": float64(200),
			},
		},
		{
			name: "all criteria are AND combined",
			criteria: entity.ExpenseSearchCriteria{
				Query:         "x",
				Category:      "Food",
				Vendor:        "Jollibee",
				PaymentMethod: "Cash",
				MinAmount:     float64Ptr(1),
				MaxAmount:     float64Ptr(2),
				StartDate:     timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
				EndDate:       timePtr(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
			},
			wantClauses: []string{
				"category_name ILIKE :category",
				"vendor_name ILIKE :vendor",
				"payment_method_name ILIKE :payment_method",
				"amount >= :min_amount",
				"amount <= :max_amount",
				"expense_date >= :start_date",
				"expense_date <= :end_date",
			},
			wantArgs: map[string]interface{}{
				"q":              "%x%",
				"category":       "%Food%",
				"vendor":         "%Jollibee%",
				"payment_method": "%Cash%",
				"min_amount":     float64(1),
				"max_amount":     float64(2),
				"start_date":     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				"end_date":       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, args := buildSearchFilter(tt.criteria)

			if len(tt.wantClauses) == 0 {
				if filter != "" {
					t.Fatalf("filter = %q, want empty", filter)
				}
			} else {
				if !strings.HasPrefix(filter, " WHERE ") {
					t.Fatalf("filter %q does not start with WHERE", filter)
				}
				for _, clause := range tt.wantClauses {
					if !strings.Contains(filter, clause) {
						t.Errorf("filter missing clause %q: %s", clause, filter)
					}
				}
				joined := strings.Count(filter, " AND ")
				wantJoins := len(strings.Split(strings.TrimPrefix(filter, " WHERE "), " AND ")) - 1
				if joined != wantJoins {
					t.Errorf("clauses not AND combined: %s", filter)
				}
			}

			for key, want := range tt.wantArgs {
				got, ok := args[key]
				if !ok {
					t.Errorf("args missing key %q", key)
					continue
				}
				if got != want {
					t.Errorf("args[%q] = %v, want %v", key, got, want)
				}
			}
			if len(args) != len(tt.wantArgs) {
				t.Errorf("args has %d entries, want %d", len(args), len(tt.wantArgs))
			}
		})
	}
}

func TestMakeExpenseRecordDefaultsQtyToOne(t *testing.T) {
	r := &expenseRepository{}

	record := r.makeExpenseRecord(ExpenseRecordDB{
		ExpenseID:   7,
		ExpenseDate: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		Amount:      500,
	})

	if record.Qty != 1 {
		t.Errorf("Qty = %d, want 1", record.Qty)
	}
	if record.Description != nil {
		t.Errorf("Description = %v, want nil", *record.Description)
	}
	if record.UnitPrice != nil {
		t.Errorf("UnitPrice = %v, want nil", *record.UnitPrice)
	}
}
