package memory

import (
	"context"
	"fmt"

	"github.com/api-sage/banking-record-service/internal/domain"
)

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) GetByNumber(_ context.Context, accountNumber int64) (domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		for _, account := range customer.Accounts {
			if account.AccountNumber == accountNumber {
				return account, nil
			}
		}
	}

	return domain.Account{}, fmt.Errorf("%w: no account with number %d", domain.ErrRecordNotFound, accountNumber)
}

func (r *AccountRepository) Save(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, customer := range r.store.customers {
		for i := range customer.Accounts {
			if customer.Accounts[i].ID == account.ID {
				account.CustomerID = customer.ID
				customer.Accounts[i] = account
				return account, nil
			}
		}
	}

	return domain.Account{}, fmt.Errorf("%w: no account with id %s", domain.ErrRecordNotFound, account.ID)
}

func (r *AccountRepository) Delete(_ context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, customer := range r.store.customers {
		for i := range customer.Accounts {
			if customer.Accounts[i].ID == account.ID {
				customer.Accounts = append(customer.Accounts[:i], customer.Accounts[i+1:]...)
				return nil
			}
		}
	}

	return nil
}
