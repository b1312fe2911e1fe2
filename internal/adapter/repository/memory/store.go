package memory

import (
	"sync"
	"time"

	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/google/uuid"
)

// Store is an in-process stand-in for the relational store, backing the
// service and controller tests. A single mutex serializes access; the same
// lost-update anomaly as the real store applies between a read and a later
// save.
type Store struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
	order     []string
}

func NewStore() *Store {
	return &Store{customers: make(map[string]*domain.Customer)}
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

func (s *Store) saveCustomerLocked(customer domain.Customer) domain.Customer {
	now := time.Now().UTC()

	if customer.ID == "" {
		customer.ID = uuid.NewString()
		customer.CreatedAt = now
		s.order = append(s.order, customer.ID)
	} else if _, ok := s.customers[customer.ID]; !ok {
		s.order = append(s.order, customer.ID)
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	accounts := make([]domain.Account, len(customer.Accounts))
	for i, account := range customer.Accounts {
		account.CustomerID = customer.ID
		if account.ID == "" {
			account.ID = uuid.NewString()
			account.CreatedAt = now
		}
		accounts[i] = account
	}
	customer.Accounts = accounts

	stored := cloneCustomer(customer)
	s.customers[customer.ID] = &stored

	return cloneCustomer(stored)
}

func (s *Store) listLocked() []domain.Customer {
	out := make([]domain.Customer, 0, len(s.order))
	for _, id := range s.order {
		if customer, ok := s.customers[id]; ok {
			out = append(out, cloneCustomer(*customer))
		}
	}
	return out
}

func cloneCustomer(customer domain.Customer) domain.Customer {
	accounts := make([]domain.Account, len(customer.Accounts))
	copy(accounts, customer.Accounts)
	customer.Accounts = accounts
	return customer
}
