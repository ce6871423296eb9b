package expenseService

import (
	"CostTracker/internal/api/expense"
	expenseRepository "CostTracker/internal/api/expense/repository"
	"CostTracker/internal/entity"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IExpenseService interface {
	CreateExpense(ctx context.Context, req expense.UpsertExpenseRequest) (entity.ExpenseRecord, error)
	GetExpenseByID(ctx context.Context, id int64) (entity.ExpenseRecord, error)
	UpdateExpense(ctx context.Context, id int64, req expense.UpsertExpenseRequest) (entity.ExpenseRecord, error)
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, page int64, pageSize int64) ([]entity.ExpenseRecord, int64, error)
	SearchExpenses(ctx context.Context, criteria entity.ExpenseSearchCriteria, page int64, pageSize int64) ([]entity.ExpenseRecord, int64, error)
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
}

func NewExpenseService(log *logrus.Logger, repo expenseRepository.Repository) IExpenseService {
	return &expenseService{
		log:               log,
		expenseRepository: repo,
	}
}
