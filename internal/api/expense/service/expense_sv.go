package expenseService

import (
	"CostTracker/internal/api/expense"
	expenseRepository "CostTracker/internal/api/expense/repository"
	"CostTracker/internal/entity"
	contextPkg "CostTracker/pkg/context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (s *expenseService) CreateExpense(ctx context.Context, req expense.UpsertExpenseRequest) (entity.ExpenseRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	// Dimension resolution and the fact insert share one transaction so a
	// failed insert does not leave freshly created dimension rows behind.
	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.ExpenseRecord{}, err
	}
	defer repo.Rollback()

	exp, err := s.buildExpense(ctx, repo, req)
	if err != nil {
		return entity.ExpenseRecord{}, err
	}

	id, err := repo.Expense.Create(ctx, exp)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create expense")
		return entity.ExpenseRecord{}, expense.ErrCreateExpense
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense creation")
		return entity.ExpenseRecord{}, expense.ErrCreateExpense
	}

	return s.GetExpenseByID(ctx, id)
}

func (s *expenseService) GetExpenseByID(ctx context.Context, id int64) (entity.ExpenseRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.ExpenseRecord{}, err
	}

	record, err := repo.Expense.GetByID(ctx, id)
	if err != nil {
		return entity.ExpenseRecord{}, err
	}

	return record, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, id int64, req expense.UpsertExpenseRequest) (entity.ExpenseRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.ExpenseRecord{}, err
	}
	defer repo.Rollback()

	exp, err := s.buildExpense(ctx, repo, req)
	if err != nil {
		return entity.ExpenseRecord{}, err
	}
	exp.ID = id

	if err := repo.Expense.Update(ctx, exp); err != nil {
		if err == expense.ErrExpenseNotFound {
			return entity.ExpenseRecord{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Error("Failed to update expense")
		return entity.ExpenseRecord{}, expense.ErrUpdateExpense
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense update")
		return entity.ExpenseRecord{}, expense.ErrUpdateExpense
	}

	return s.GetExpenseByID(ctx, id)
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Expense.Delete(ctx, id); err != nil {
		if err == expense.ErrExpenseNotFound {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Error("Failed to delete expense")
		return expense.ErrDeleteExpense
	}

	return nil
}

func (s *expenseService) ListExpenses(ctx context.Context, page int64, pageSize int64) ([]entity.ExpenseRecord, int64, error) {
	return s.SearchExpenses(ctx, entity.ExpenseSearchCriteria{}, page, pageSize)
}

func (s *expenseService) SearchExpenses(ctx context.Context, criteria entity.ExpenseSearchCriteria, page int64, pageSize int64) ([]entity.ExpenseRecord, int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, 0, err
	}

	limit, offset := normalizePage(page, pageSize)

	records, total, err := repo.Expense.Search(ctx, criteria, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to search expenses")
		return nil, 0, expense.ErrListExpenses
	}

	return records, total, nil
}

// buildExpense resolves the three dimension names through the given client
// and settles the amount. Shared by create and update since PUT is a full
// replace with the same payload rules.
func (s *expenseService) buildExpense(ctx context.Context, repo expenseRepository.Client, req expense.UpsertExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	expenseDate, err := time.Parse(time.DateOnly, req.ExpenseDate)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"expense_date": req.ExpenseDate,
		}).Warn("Unparseable expense date reached service")
		return entity.Expense{}, err
	}

	amount, err := s.resolveAmount(requestID, req)
	if err != nil {
		return entity.Expense{}, err
	}

	categoryID, err := repo.Dimension.ResolveCategory(ctx, req.CategoryName)
	if err != nil {
		return entity.Expense{}, err
	}

	vendorID, err := repo.Dimension.ResolveVendor(ctx, req.VendorName)
	if err != nil {
		return entity.Expense{}, err
	}

	paymentMethodID, err := repo.Dimension.ResolvePaymentMethod(ctx, req.PaymentMethodName)
	if err != nil {
		return entity.Expense{}, err
	}

	qty := int64(1)
	if req.Qty != nil {
		qty = *req.Qty
	}

	return entity.Expense{
		ExpenseDate:     expenseDate,
		Amount:          amount,
		CategoryID:      categoryID,
		VendorID:        vendorID,
		PaymentMethodID: paymentMethodID,
		Description:     req.Description,
		Qty:             qty,
		UnitPrice:       req.UnitPrice,
	}, nil
}

// resolveAmount settles the stored amount: an explicit amount always wins,
// otherwise it is derived as qty x unit_price. Validation guarantees at
// least one of the two paths is available.
func (s *expenseService) resolveAmount(requestID string, req expense.UpsertExpenseRequest) (float64, error) {
	var derived *decimal.Decimal
	if req.Qty != nil && req.UnitPrice != nil {
		d := decimal.NewFromFloat(*req.UnitPrice).Mul(decimal.NewFromInt(*req.Qty)).Round(2)
		derived = &d
	}

	if req.Amount != nil {
		if derived != nil && !decimal.NewFromFloat(*req.Amount).Equal(*derived) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"amount":     *req.Amount,
				"derived":    derived.String(),
			}).Warn("Explicit amount disagrees with qty x unit_price, storing explicit amount")
		}
		return *req.Amount, nil
	}

	if derived != nil {
		return derived.InexactFloat64(), nil
	}

	return 0, expense.ErrAmountMissing
}

func normalizePage(page int64, pageSize int64) (limit int64, offset int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}
