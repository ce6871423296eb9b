package expenseHandler

import (
	"CostTracker/internal/api/expense"
	"CostTracker/internal/entity"
	contextPkg "CostTracker/pkg/context"
	"CostTracker/pkg/formatter"
	"CostTracker/pkg/handlerUtil"
	jwtPkg "CostTracker/pkg/jwt"
	"CostTracker/pkg/log"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ExpenseHandler) ListExpenses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	admin, err := jwtPkg.GetAdminLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized, access token invalid or expired")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"admin":      admin.Username,
		"path":       ctx.Path(),
	}).Debug("Processing list expenses request")

	if _, err := formatter.Negotiate(ctx); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "negotiate_format")
	}

	page := int64(ctx.QueryInt("page", 1))
	pageSize := int64(ctx.QueryInt("page_size", 20))

	records, total, err := h.expenseService.ListExpenses(c, page, pageSize)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_expenses")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeListEnvelope(records, total))
	}
}

func (h *ExpenseHandler) GetExpenseByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	admin, err := jwtPkg.GetAdminLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized, access token invalid or expired")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"admin":      admin.Username,
		"path":       ctx.Path(),
	}).Debug("Processing get expense by ID request")

	if _, err := formatter.Negotiate(ctx); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "negotiate_format")
	}

	id, err := parseExpenseID(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	record, err := h.expenseService.GetExpenseByID(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expense.ExpenseEnvelope{
			Data: expense.NewExpenseResponse(record),
		})
	}
}

func (h *ExpenseHandler) CreateExpense(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	admin, err := jwtPkg.GetAdminLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized, access token invalid or expired")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"admin":      admin.Username,
		"path":       ctx.Path(),
	}).Debug("Processing create expense request")

	if _, err := formatter.Negotiate(ctx); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "negotiate_format")
	}

	var req expense.UpsertExpenseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	record, err := h.expenseService.CreateExpense(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		ctx.Set("Location", fmt.Sprintf("/api/expenses/%d", record.ID))
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, expense.ExpenseEnvelope{
			Data: expense.NewExpenseResponse(record),
		})
	}
}

func (h *ExpenseHandler) UpdateExpense(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	admin, err := jwtPkg.GetAdminLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized, access token invalid or expired")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"admin":      admin.Username,
		"path":       ctx.Path(),
	}).Debug("Processing update expense request")

	if _, err := formatter.Negotiate(ctx); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "negotiate_format")
	}

	id, err := parseExpenseID(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	var req expense.UpsertExpenseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	record, err := h.expenseService.UpdateExpense(c, id, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expense.ExpenseEnvelope{
			Data: expense.NewExpenseResponse(record),
		})
	}
}

func (h *ExpenseHandler) DeleteExpense(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	admin, err := jwtPkg.GetAdminLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized, access token invalid or expired")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"admin":      admin.Username,
		"path":       ctx.Path(),
	}).Debug("Processing delete expense request")

	id, err := parseExpenseID(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.expenseService.DeleteExpense(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
	}
}

func (h *ExpenseHandler) SearchExpenses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	admin, err := jwtPkg.GetAdminLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized, access token invalid or expired")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"admin":      admin.Username,
		"path":       ctx.Path(),
	}).Debug("Processing search expenses request")

	if _, err := formatter.Negotiate(ctx); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "negotiate_format")
	}

	criteria, err := parseSearchCriteria(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	page := int64(ctx.QueryInt("page", 1))
	pageSize := int64(ctx.QueryInt("page_size", 20))

	records, total, err := h.expenseService.SearchExpenses(c, criteria, page, pageSize)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "search_expenses")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeListEnvelope(records, total))
	}
}

func makeListEnvelope(records []entity.ExpenseRecord, total int64) expense.ExpenseListEnvelope {
	responses := make([]expense.ExpenseResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, expense.NewExpenseResponse(record))
	}

	return expense.ExpenseListEnvelope{
		Data:  responses,
		Count: total,
	}
}

func parseExpenseID(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("expense id must be a positive integer")
	}
	return id, nil
}

func parseSearchCriteria(ctx *fiber.Ctx) (entity.ExpenseSearchCriteria, error) {
	criteria := entity.ExpenseSearchCriteria{
		Query:         ctx.Query("q"),
		Category:      ctx.Query("category"),
		Vendor:        ctx.Query("vendor"),
		PaymentMethod: ctx.Query("payment_method"),
	}

	if raw := ctx.Query("min_amount"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return entity.ExpenseSearchCriteria{}, errors.New("min_amount must be a number")
		}
		criteria.MinAmount = &value
	}

	if raw := ctx.Query("max_amount"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return entity.ExpenseSearchCriteria{}, errors.New("max_amount must be a number")
		}
		criteria.MaxAmount = &value
	}

	if raw := ctx.Query("start_date"); raw != "" {
		value, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return entity.ExpenseSearchCriteria{}, errors.New("start_date must be YYYY-MM-DD")
		}
		criteria.StartDate = &value
	}

	if raw := ctx.Query("end_date"); raw != "" {
		value, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return entity.ExpenseSearchCriteria{}, errors.New("end_date must be YYYY-MM-DD")
		}
		criteria.EndDate = &value
	}

	return criteria, nil
}
