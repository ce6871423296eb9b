package expenseRepository

import (
	"CostTracker/internal/api/expense"
	"CostTracker/internal/entity"
	contextPkg "CostTracker/pkg/context"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ExpenseRecordDB struct {
	ExpenseID         int64           `db:"expense_id"`
	ExpenseDate       time.Time       `db:"expense_date"`
	Amount            float64         `db:"amount"`
	Description       sql.NullString  `db:"description"`
	Qty               sql.NullInt64   `db:"qty"`
	UnitPrice         sql.NullFloat64 `db:"unit_price"`
	CategoryName      sql.NullString  `db:"category_name"`
	VendorName        sql.NullString  `db:"vendor_name"`
	PaymentMethodName sql.NullString  `db:"payment_method_name"`
}

func (r *expenseRepository) Create(c context.Context, exp entity.Expense) (int64, error) {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"expense_date":      exp.ExpenseDate,
		"amount":            exp.Amount,
		"category_id":       exp.CategoryID,
		"vendor_id":         exp.VendorID,
		"payment_method_id": exp.PaymentMethodID,
		"description":       exp.Description,
		"qty":               exp.Qty,
		"unit_price":        exp.UnitPrice,
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Create named query preparation err")
		return 0, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")
		return 0, err
	}

	return id, nil
}

func (r *expenseRepository) GetByID(c context.Context, id int64) (entity.ExpenseRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var record ExpenseRecordDB

	argsKV := map[string]interface{}{
		"expense_id": id,
	}

	query, args, err := sqlx.Named(queryGetExpenseByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.ExpenseRecord{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"expense_id": id,
			}).Warn("GetByID no rows found")
			return entity.ExpenseRecord{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.ExpenseRecord{}, err
	}

	return r.makeExpenseRecord(record), nil
}

func (r *expenseRepository) Update(c context.Context, exp entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"expense_id":        exp.ID,
		"expense_date":      exp.ExpenseDate,
		"amount":            exp.Amount,
		"category_id":       exp.CategoryID,
		"vendor_id":         exp.VendorID,
		"payment_method_id": exp.PaymentMethodID,
		"description":       exp.Description,
		"qty":               exp.Qty,
		"unit_price":        exp.UnitPrice,
	}

	query, args, err := sqlx.Named(queryUpdateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": exp.ID,
		}).Warn("Update no rows affected")
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) Delete(c context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"expense_id": id,
	}

	query, args, err := sqlx.Named(queryDeleteExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Delete named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Delete execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Delete rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
		}).Warn("Delete no rows affected")
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) List(c context.Context, limit int64, offset int64) ([]entity.ExpenseRecord, int64, error) {
	return r.selectPage(c, entity.ExpenseSearchCriteria{}, limit, offset)
}

func (r *expenseRepository) Search(c context.Context, criteria entity.ExpenseSearchCriteria, limit int64, offset int64) ([]entity.ExpenseRecord, int64, error) {
	return r.selectPage(c, criteria, limit, offset)
}

func (r *expenseRepository) selectPage(c context.Context, criteria entity.ExpenseSearchCriteria, limit int64, offset int64) ([]entity.ExpenseRecord, int64, error) {
	requestID := contextPkg.GetRequestID(c)

	filter, argsKV := buildSearchFilter(criteria)

	countQuery, countArgs, err := sqlx.Named(queryCountExpenses+filter, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("selectPage count query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int64
	if err := r.q.GetContext(c, &total, countQuery, countArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("selectPage count execution err")
		return nil, 0, err
	}

	argsKV["limit"] = limit
	argsKV["offset"] = offset

	query, args, err := sqlx.Named(querySelectExpenses+filter+queryOrderAndPage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("selectPage named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var records []ExpenseRecordDB
	if err := r.q.SelectContext(c, &records, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("selectPage execution err")
		return nil, 0, err
	}

	result := make([]entity.ExpenseRecord, 0, len(records))
	for _, record := range records {
		result = append(result, r.makeExpenseRecord(record))
	}

	return result, total, nil
}

// buildSearchFilter turns the optional criteria into an AND-combined WHERE
// clause with named parameters. Empty criteria produce no filter at all, so
// a search without parameters degenerates to a plain list.
func buildSearchFilter(criteria entity.ExpenseSearchCriteria) (string, map[string]interface{}) {
	var clauses []string
	argsKV := map[string]interface{}{}

	if criteria.IsEmpty() {
		return "", argsKV
	}

	if criteria.Query != "" {
		clauses = append(clauses, "(description ILIKE :q OR vendor_name ILIKE :q OR category_name ILIKE :q)")
		argsKV["q"] = "%" + criteria.Query + "%"
	}

	if criteria.Category != "" {
		clauses = append(clauses, "category_name ILIKE :category")
		argsKV["category"] = "%" + criteria.Category + "%"
	}

	if criteria.Vendor != "" {
		clauses = append(clauses, "vendor_name ILIKE :vendor")
		argsKV["vendor"] = "%" + criteria.Vendor + "%"
	}

	if criteria.PaymentMethod != "" {
		clauses = append(clauses, "payment_method_name ILIKE :payment_method")
		argsKV["payment_method"] = "%" + criteria.PaymentMethod + "%"
	}

	if criteria.MinAmount != nil {
		clauses = append(clauses, "amount >= :min_amount")
		argsKV["min_amount"] = *criteria.MinAmount
	}

	if criteria.MaxAmount != nil {
		clauses = append(clauses, "amount <= :max_amount")
		argsKV["max_amount"] = *criteria.MaxAmount
	}

	if criteria.StartDate != nil {
		clauses = append(clauses, "expense_date >= :start_date")
		argsKV["start_date"] = *criteria.StartDate
	}

	if criteria.EndDate != nil {
		clauses = append(clauses, "expense_date <= :end_date")
		argsKV["end_date"] = *criteria.EndDate
	}

	if len(clauses) == 0 {
		return "", argsKV
	}

	return " WHERE " + strings.Join(clauses, " AND "), argsKV
}

func (r *expenseRepository) makeExpenseRecord(record ExpenseRecordDB) entity.ExpenseRecord {
	result := entity.ExpenseRecord{
		ID:                record.ExpenseID,
		ExpenseDate:       record.ExpenseDate,
		Amount:            record.Amount,
		Qty:               1,
		CategoryName:      record.CategoryName.String,
		VendorName:        record.VendorName.String,
		PaymentMethodName: record.PaymentMethodName.String,
	}

	if record.Description.Valid {
		description := record.Description.String
		result.Description = &description
	}

	if record.Qty.Valid {
		result.Qty = record.Qty.Int64
	}

	if record.UnitPrice.Valid {
		unitPrice := record.UnitPrice.Float64
		result.UnitPrice = &unitPrice
	}

	return result
}
