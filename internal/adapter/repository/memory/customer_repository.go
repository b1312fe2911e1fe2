package memory

import (
	"context"
	"strings"

	"github.com/api-sage/banking-record-service/internal/domain"
)

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) GetAll(_ context.Context) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.listLocked(), nil
}

func (r *CustomerRepository) FindByName(_ context.Context, name string) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(name)
	out := make([]domain.Customer, 0)
	for _, customer := range r.store.listLocked() {
		if strings.Contains(strings.ToLower(customer.Name), needle) {
			out = append(out, customer)
		}
	}

	return out, nil
}

func (r *CustomerRepository) Save(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.saveCustomerLocked(customer), nil
}

func (r *CustomerRepository) SaveAll(_ context.Context, customers []domain.Customer) ([]domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	saved := make([]domain.Customer, 0, len(customers))
	for _, customer := range customers {
		saved = append(saved, r.store.saveCustomerLocked(customer))
	}

	return saved, nil
}
