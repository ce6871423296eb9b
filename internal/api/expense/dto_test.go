package expense

import (
	"CostTracker/internal/entity"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func testRecord() entity.ExpenseRecord {
	description := "Team dinner"
	unitPrice := 125.0
	return entity.ExpenseRecord{
		ID:                42,
		ExpenseDate:       time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		Amount:            500,
		Description:       &description,
		Qty:               4,
		UnitPrice:         &unitPrice,
		CategoryName:      "Food",
		VendorName:        "Jollibee",
		PaymentMethodName: "Credit Card",
	}
}

func TestNewExpenseResponse(t *testing.T) {
	got := NewExpenseResponse(testRecord())

	if got.ExpenseID != 42 {
		t.Errorf("ExpenseID = %d, want 42", got.ExpenseID)
	}
	if got.ExpenseDate != "2025-12-25" {
		t.Errorf("ExpenseDate = %q, want 2025-12-25", got.ExpenseDate)
	}
	if got.Amount != 500 {
		t.Errorf("Amount = %v, want 500", got.Amount)
	}
	if got.Description == nil || *got.Description != "Team dinner" {
		t.Errorf("Description = %v, want Team dinner", got.Description)
	}
	if got.CategoryName != "Food" || got.VendorName != "Jollibee" || got.PaymentMethodName != "Credit Card" {
		t.Errorf("dimension names wrong: %+v", got)
	}
}

// A record rendered as JSON and as XML must carry the same field values; the
// XML document is rooted at <response>.
func TestExpenseEnvelopeFormatEquivalence(t *testing.T) {
	envelope := ExpenseEnvelope{Data: NewExpenseResponse(testRecord())}

	jsonBytes, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var fromJSON ExpenseEnvelope
	if err := json.Unmarshal(jsonBytes, &fromJSON); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	xmlBytes, err := xml.Marshal(envelope)
	if err != nil {
		t.Fatalf("xml.Marshal: %v", err)
	}
	if !strings.HasPrefix(string(xmlBytes), "<response>") {
		t.Fatalf("xml root element is not <response>: %s", xmlBytes)
	}
	var fromXML ExpenseEnvelope
	if err := xml.Unmarshal(xmlBytes, &fromXML); err != nil {
		t.Fatalf("xml.Unmarshal: %v", err)
	}

	j, x := fromJSON.Data, fromXML.Data
	if j.ExpenseID != x.ExpenseID || j.ExpenseDate != x.ExpenseDate || j.Amount != x.Amount ||
		j.Qty != x.Qty || j.CategoryName != x.CategoryName || j.VendorName != x.VendorName ||
		j.PaymentMethodName != x.PaymentMethodName {
		t.Errorf("json and xml payloads disagree:\njson: %+v\nxml:  %+v", j, x)
	}
	if j.Description == nil || x.Description == nil || *j.Description != *x.Description {
		t.Errorf("description disagrees: json=%v xml=%v", j.Description, x.Description)
	}
	if j.UnitPrice == nil || x.UnitPrice == nil || *j.UnitPrice != *x.UnitPrice {
		t.Errorf("unit price disagrees: json=%v xml=%v", j.UnitPrice, x.UnitPrice)
	}
}

func TestExpenseListEnvelopeXMLShape(t *testing.T) {
	envelope := ExpenseListEnvelope{
		Data:  []ExpenseResponse{NewExpenseResponse(testRecord())},
		Count: 1,
	}

	xmlBytes, err := xml.Marshal(envelope)
	if err != nil {
		t.Fatalf("xml.Marshal: %v", err)
	}

	doc := string(xmlBytes)
	if !strings.HasPrefix(doc, "<response>") {
		t.Errorf("xml root element is not <response>: %s", doc)
	}
	if !strings.Contains(doc, "<data><expense>") {
		t.Errorf("list items not nested under <data><expense>: %s", doc)
	}
	if !strings.Contains(doc, "<count>1</count>") {
		t.Errorf("count element missing: %s", doc)
	}
}
