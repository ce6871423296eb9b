package expenseRepository

import (
	"CostTracker/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Expense:   &expenseRepository{q: sqlExecutor, log: r.log},
		Dimension: &dimensionRepository{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Expense interface {
		Create(c context.Context, expense entity.Expense) (int64, error)
		GetByID(c context.Context, id int64) (entity.ExpenseRecord, error)
		Update(c context.Context, expense entity.Expense) error
		Delete(c context.Context, id int64) error
		List(c context.Context, limit int64, offset int64) ([]entity.ExpenseRecord, int64, error)
		Search(c context.Context, criteria entity.ExpenseSearchCriteria, limit int64, offset int64) ([]entity.ExpenseRecord, int64, error)
	}

	Dimension interface {
		ResolveCategory(c context.Context, name string) (int64, error)
		ResolveVendor(c context.Context, name string) (int64, error)
		ResolvePaymentMethod(c context.Context, name string) (int64, error)
	}

	Commit   func() error
	Rollback func() error
}

type expenseRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type dimensionRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
