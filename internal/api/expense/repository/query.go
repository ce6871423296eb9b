package expenseRepository

const (
	queryCreateExpense = `
		INSERT INTO expenses_fact (
			expense_date,
			amount,
			category_id,
			vendor_id,
			payment_method_id,
			description,
			qty,
			unit_price
		) VALUES (
			:expense_date,
			:amount,
			:category_id,
			:vendor_id,
			:payment_method_id,
			:description,
			:qty,
			:unit_price
		)
		RETURNING expense_id
	`

	queryUpdateExpense = `
		UPDATE expenses_fact
		SET
			expense_date = :expense_date,
			amount = :amount,
			category_id = :category_id,
			vendor_id = :vendor_id,
			payment_method_id = :payment_method_id,
			description = :description,
			qty = :qty,
			unit_price = :unit_price
		WHERE expense_id = :expense_id
	`

	queryDeleteExpense = `
		DELETE FROM expenses_fact
		WHERE expense_id = :expense_id
	`

	queryGetExpenseByID = `
		SELECT
			expense_id,
			expense_date,
			amount,
			description,
			qty,
			unit_price,
			category_name,
			vendor_name,
			payment_method_name
		FROM expenses_denorm
		WHERE expense_id = :expense_id
	`

	// List and search share the denormalized projection and ordering so a
	// search without criteria returns exactly the list result.
	querySelectExpenses = `
		SELECT
			expense_id,
			expense_date,
			amount,
			description,
			qty,
			unit_price,
			category_name,
			vendor_name,
			payment_method_name
		FROM expenses_denorm
	`

	queryCountExpenses = `
		SELECT COUNT(*)
		FROM expenses_denorm
	`

	queryOrderAndPage = `
		ORDER BY expense_date DESC, expense_id DESC
		LIMIT :limit OFFSET :offset
	`

	querySelectCategoryID = `
		SELECT category_id
		FROM expense_categories
		WHERE category_name = :name
	`

	queryInsertCategory = `
		INSERT INTO expense_categories (category_name)
		VALUES (:name)
		ON CONFLICT (category_name) DO NOTHING
		RETURNING category_id
	`

	querySelectVendorID = `
		SELECT vendor_id
		FROM vendors
		WHERE vendor_name = :name
	`

	queryInsertVendor = `
		INSERT INTO vendors (vendor_name)
		VALUES (:name)
		ON CONFLICT (vendor_name) DO NOTHING
		RETURNING vendor_id
	`

	querySelectPaymentMethodID = `
		SELECT payment_method_id
		FROM payment_methods
		WHERE method_name = :name
	`

	queryInsertPaymentMethod = `
		INSERT INTO payment_methods (method_name)
		VALUES (:name)
		ON CONFLICT (method_name) DO NOTHING
		RETURNING payment_method_id
	`
)
