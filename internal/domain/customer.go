package domain

import "time"

// Customer owns its accounts exclusively: deleting a customer cascades to
// its accounts, and every customer read carries the full account list.
type Customer struct {
	ID        string
	Name      string
	DOB       time.Time
	Email     string
	Accounts  []Account
	CreatedAt time.Time
	UpdatedAt time.Time
}
