package expenseRepository

import (
	contextPkg "CostTracker/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *dimensionRepository) ResolveCategory(c context.Context, name string) (int64, error) {
	return r.resolve(c, "category", querySelectCategoryID, queryInsertCategory, name)
}

func (r *dimensionRepository) ResolveVendor(c context.Context, name string) (int64, error) {
	return r.resolve(c, "vendor", querySelectVendorID, queryInsertVendor, name)
}

func (r *dimensionRepository) ResolvePaymentMethod(c context.Context, name string) (int64, error) {
	return r.resolve(c, "payment_method", querySelectPaymentMethodID, queryInsertPaymentMethod, name)
}

// resolve finds the dimension row for a case-sensitive exact name, creating
// it on first reference. Concurrent first references race on the insert; the
// unique constraint swallows the loser (ON CONFLICT DO NOTHING returns no
// row), and the re-select picks up the winner's id.
func (r *dimensionRepository) resolve(c context.Context, kind string, selectQuery string, insertQuery string, name string) (int64, error) {
	requestID := contextPkg.GetRequestID(c)

	id, err := r.selectID(c, selectQuery, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"dimension":  kind,
			"error":      err.Error(),
		}).Error("Dimension lookup err")
		return 0, err
	}

	id, err = r.insertID(c, insertQuery, name)
	if err == nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"dimension":  kind,
			"name":       name,
		}).Info("Created new dimension row")
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"dimension":  kind,
			"error":      err.Error(),
		}).Error("Dimension insert err")
		return 0, err
	}

	// Lost the insert race, the row exists now.
	id, err = r.selectID(c, selectQuery, name)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"dimension":  kind,
			"error":      err.Error(),
		}).Error("Dimension re-read after conflict err")
		return 0, err
	}

	return id, nil
}

func (r *dimensionRepository) selectID(c context.Context, selectQuery string, name string) (int64, error) {
	query, args, err := sqlx.Named(selectQuery, map[string]interface{}{"name": name})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *dimensionRepository) insertID(c context.Context, insertQuery string, name string) (int64, error) {
	query, args, err := sqlx.Named(insertQuery, map[string]interface{}{"name": name})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
