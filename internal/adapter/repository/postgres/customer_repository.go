package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/api-sage/banking-record-service/internal/logger"
	"github.com/lib/pq"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetAll returns every customer, each with its full account list.
func (r *CustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	const query = `
SELECT id, cust_name, dob, email, created_at, updated_at
FROM customers
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("customer repository get all failed", err, nil)
		return nil, fmt.Errorf("get all customers: %w", err)
	}
	defer rows.Close()

	customers, err := scanCustomers(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAccounts(ctx, customers); err != nil {
		return nil, err
	}

	return customers, nil
}

// FindByName matches customer names partially and case-insensitively.
func (r *CustomerRepository) FindByName(ctx context.Context, name string) ([]domain.Customer, error) {
	const query = `
SELECT id, cust_name, dob, email, created_at, updated_at
FROM customers
WHERE cust_name ILIKE '%' || $1 || '%'
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		logger.Error("customer repository find by name failed", err, logger.Fields{
			"customerName": name,
		})
		return nil, fmt.Errorf("find customers by name: %w", err)
	}
	defer rows.Close()

	customers, err := scanCustomers(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAccounts(ctx, customers); err != nil {
		return nil, err
	}

	return customers, nil
}

// Save upserts the customer and synchronizes its account rows: submitted
// accounts are inserted or updated, stored accounts missing from the
// submitted list are removed (orphan removal).
func (r *CustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("begin save customer tx: %w", err)
	}

	saved, err := saveCustomerTx(ctx, tx, customer)
	if err != nil {
		_ = tx.Rollback()
		logger.Error("customer repository save failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return domain.Customer{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Customer{}, fmt.Errorf("commit save customer tx: %w", err)
	}

	return saved, nil
}

func (r *CustomerRepository) SaveAll(ctx context.Context, customers []domain.Customer) ([]domain.Customer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save all customers tx: %w", err)
	}

	saved := make([]domain.Customer, 0, len(customers))
	for _, customer := range customers {
		out, err := saveCustomerTx(ctx, tx, customer)
		if err != nil {
			_ = tx.Rollback()
			logger.Error("customer repository save all failed", err, logger.Fields{
				"customerId": customer.ID,
			})
			return nil, err
		}
		saved = append(saved, out)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save all customers tx: %w", err)
	}

	return saved, nil
}

func saveCustomerTx(ctx context.Context, tx *sql.Tx, customer domain.Customer) (domain.Customer, error) {
	var dob sql.NullTime
	if !customer.DOB.IsZero() {
		dob = sql.NullTime{Time: customer.DOB, Valid: true}
	}

	if customer.ID == "" {
		const query = `
INSERT INTO customers (cust_name, dob, email)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`

		if err := tx.QueryRowContext(ctx, query, customer.Name, dob, customer.Email).Scan(
			&customer.ID,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
		}
	} else {
		const query = `
UPDATE customers
SET cust_name = $1, dob = $2, email = $3, updated_at = NOW()
WHERE id = $4
RETURNING created_at, updated_at`

		if err := tx.QueryRowContext(ctx, query, customer.Name, dob, customer.Email, customer.ID).Scan(
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return domain.Customer{}, fmt.Errorf("update customer %s: %w", customer.ID, err)
		}
	}

	keptIDs := make([]string, 0, len(customer.Accounts))
	for i := range customer.Accounts {
		account := customer.Accounts[i]
		account.CustomerID = customer.ID

		if account.ID == "" {
			const query = `
INSERT INTO accounts (customer_id, account_number, balance_amount)
VALUES ($1, $2, $3)
RETURNING id, created_at`

			if err := tx.QueryRowContext(ctx, query, account.CustomerID, account.AccountNumber, account.Balance).Scan(
				&account.ID,
				&account.CreatedAt,
			); err != nil {
				return domain.Customer{}, fmt.Errorf("insert customer account: %w", err)
			}
		} else {
			const query = `
UPDATE accounts
SET account_number = $1, balance_amount = $2
WHERE id = $3 AND customer_id = $4`

			if _, err := tx.ExecContext(ctx, query, account.AccountNumber, account.Balance, account.ID, account.CustomerID); err != nil {
				return domain.Customer{}, fmt.Errorf("update customer account %s: %w", account.ID, err)
			}
		}

		customer.Accounts[i] = account
		keptIDs = append(keptIDs, account.ID)
	}

	const orphanQuery = `
DELETE FROM accounts
WHERE customer_id = $1 AND NOT (id = ANY($2))`

	if _, err := tx.ExecContext(ctx, orphanQuery, customer.ID, pq.Array(keptIDs)); err != nil {
		return domain.Customer{}, fmt.Errorf("remove orphaned accounts for customer %s: %w", customer.ID, err)
	}

	return customer, nil
}

func scanCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		var dob sql.NullTime
		var email sql.NullString

		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&dob,
			&email,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}

		if dob.Valid {
			customer.DOB = dob.Time
		}
		customer.Email = email.String
		customer.Accounts = []domain.Account{}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) loadAccounts(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	ids := make([]string, 0, len(customers))
	index := make(map[string]int, len(customers))
	for i, customer := range customers {
		ids = append(ids, customer.ID)
		index[customer.ID] = i
	}

	const query = `
SELECT id, customer_id, account_number, balance_amount, created_at
FROM accounts
WHERE customer_id = ANY($1)
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.Error("customer repository load accounts failed", err, nil)
		return fmt.Errorf("load customer accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.CustomerID,
			&account.AccountNumber,
			&account.Balance,
			&account.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan customer account: %w", err)
		}

		i, ok := index[account.CustomerID]
		if !ok {
			continue
		}
		customers[i].Accounts = append(customers[i].Accounts, account)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate customer accounts: %w", err)
	}

	return nil
}
