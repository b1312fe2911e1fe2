package domain

import "context"

type CustomerRepository interface {
	GetAll(ctx context.Context) ([]Customer, error)
	FindByName(ctx context.Context, name string) ([]Customer, error)
	Save(ctx context.Context, customer Customer) (Customer, error)
	SaveAll(ctx context.Context, customers []Customer) ([]Customer, error)
}
