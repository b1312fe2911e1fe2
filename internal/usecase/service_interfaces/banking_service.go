package service_interfaces

import (
	"context"

	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/shopspring/decimal"
)

type BankingService interface {
	GetAccountByNumber(ctx context.Context, accountNumber int64) (domain.Account, error)
	ListCustomerAccounts(ctx context.Context) ([]domain.Customer, error)
	FindCustomerAccounts(ctx context.Context, customerName string) ([]domain.Customer, error)
	CreateCustomerAccount(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	UpdateCustomerAccount(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error)
	DeleteAccount(ctx context.Context, accountNumber int64) (domain.Account, error)
}
