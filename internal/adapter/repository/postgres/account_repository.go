package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/api-sage/banking-record-service/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber int64) (domain.Account, error) {
	const query = `
SELECT id, customer_id, account_number, balance_amount, created_at
FROM accounts
WHERE account_number = $1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountNumber,
		&account.Balance,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, fmt.Errorf("%w: no account with number %d", domain.ErrRecordNotFound, accountNumber)
		}
		logger.Error("account repository get by number failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		const query = `
INSERT INTO accounts (customer_id, account_number, balance_amount)
VALUES ($1, $2, $3)
RETURNING id, created_at`

		if err := r.db.QueryRowContext(
			ctx,
			query,
			account.CustomerID,
			account.AccountNumber,
			account.Balance,
		).Scan(&account.ID, &account.CreatedAt); err != nil {
			logger.Error("account repository insert failed", err, logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return domain.Account{}, fmt.Errorf("insert account: %w", err)
		}

		return account, nil
	}

	const query = `
UPDATE accounts
SET account_number = $1, balance_amount = $2
WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, account.AccountNumber, account.Balance, account.ID)
	if err != nil {
		logger.Error("account repository update failed", err, logger.Fields{
			"accountId":     account.ID,
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Account{}, fmt.Errorf("%w: no account with id %s", domain.ErrRecordNotFound, account.ID)
	}

	return account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, account domain.Account) error {
	const query = `DELETE FROM accounts WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, account.ID); err != nil {
		logger.Error("account repository delete failed", err, logger.Fields{
			"accountId":     account.ID,
			"accountNumber": account.AccountNumber,
		})
		return fmt.Errorf("delete account: %w", err)
	}

	logger.Info("account repository delete success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return nil
}
