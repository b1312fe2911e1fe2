package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account carries two identities: ID is the opaque surrogate assigned by
// storage, AccountNumber is the externally visible 11-digit number assigned
// once at creation.
type Account struct {
	ID            string
	CustomerID    string
	AccountNumber int64
	Balance       decimal.Decimal
	CreatedAt     time.Time
}
