package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/shopspring/decimal"
)

const dobLayout = "2006-01-02"

// AccountPayload mirrors the stored account record on the wire. acctId is
// the surrogate identity, accountNum the externally visible number.
type AccountPayload struct {
	AcctID     string          `json:"acctId,omitempty"`
	AccountNum int64           `json:"accountNum,omitempty"`
	CreateDate string          `json:"createDate,omitempty"`
	BalanceAmt decimal.Decimal `json:"balanceAmt"`
}

type CustomerPayload struct {
	CustID   string           `json:"custId,omitempty"`
	CustName string           `json:"custName"`
	DOB      string           `json:"dob,omitempty"`
	Email    string           `json:"email,omitempty"`
	Accounts []AccountPayload `json:"accounts"`
}

func (p CustomerPayload) Validate() error {
	var errs []string

	if strings.TrimSpace(p.CustName) == "" {
		errs = append(errs, "custName is required")
	}

	if strings.TrimSpace(p.DOB) != "" {
		if _, err := time.Parse(dobLayout, strings.TrimSpace(p.DOB)); err != nil {
			errs = append(errs, "dob must be formatted as YYYY-MM-DD")
		}
	}

	if len(p.Accounts) == 0 {
		errs = append(errs, "at least one account is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (p CustomerPayload) ToDomain() domain.Customer {
	customer := domain.Customer{
		ID:    strings.TrimSpace(p.CustID),
		Name:  strings.TrimSpace(p.CustName),
		Email: strings.TrimSpace(p.Email),
	}

	if dob, err := time.Parse(dobLayout, strings.TrimSpace(p.DOB)); err == nil {
		customer.DOB = dob
	}

	customer.Accounts = make([]domain.Account, 0, len(p.Accounts))
	for _, account := range p.Accounts {
		customer.Accounts = append(customer.Accounts, account.ToDomain())
	}

	return customer
}

func (p AccountPayload) ToDomain() domain.Account {
	account := domain.Account{
		ID:            strings.TrimSpace(p.AcctID),
		AccountNumber: p.AccountNum,
		Balance:       p.BalanceAmt,
	}

	if createDate, err := time.Parse(time.RFC3339, strings.TrimSpace(p.CreateDate)); err == nil {
		account.CreatedAt = createDate
	}

	return account
}

func CustomerFromDomain(customer domain.Customer) CustomerPayload {
	payload := CustomerPayload{
		CustID:   customer.ID,
		CustName: customer.Name,
		Email:    customer.Email,
		Accounts: make([]AccountPayload, 0, len(customer.Accounts)),
	}

	if !customer.DOB.IsZero() {
		payload.DOB = customer.DOB.Format(dobLayout)
	}

	for _, account := range customer.Accounts {
		payload.Accounts = append(payload.Accounts, AccountFromDomain(account))
	}

	return payload
}

func AccountFromDomain(account domain.Account) AccountPayload {
	payload := AccountPayload{
		AcctID:     account.ID,
		AccountNum: account.AccountNumber,
		BalanceAmt: account.Balance,
	}

	if !account.CreatedAt.IsZero() {
		payload.CreateDate = account.CreatedAt.Format(time.RFC3339)
	}

	return payload
}

func CustomersFromDomain(customers []domain.Customer) []CustomerPayload {
	payloads := make([]CustomerPayload, 0, len(customers))
	for _, customer := range customers {
		payloads = append(payloads, CustomerFromDomain(customer))
	}

	return payloads
}
