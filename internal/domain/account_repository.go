package domain

import "context"

type AccountRepository interface {
	GetByNumber(ctx context.Context, accountNumber int64) (Account, error)
	Save(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, account Account) error
}
