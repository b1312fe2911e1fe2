package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/api-sage/banking-record-service/internal/config"
	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/api-sage/banking-record-service/internal/logger"
	"github.com/shopspring/decimal"
)

// Account numbers are drawn uniformly from [min, max), always 11 digits.
const accountNumberMin = 10_000_000_000
const accountNumberMax = 99_999_999_999

var oneHundred = decimal.NewFromInt(100)

type BankingService struct {
	customerRepo domain.CustomerRepository
	accountRepo  domain.AccountRepository
	limits       config.Limits
}

func NewBankingService(
	customerRepo domain.CustomerRepository,
	accountRepo domain.AccountRepository,
	limits config.Limits,
) *BankingService {
	return &BankingService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		limits:       limits,
	}
}

func (s *BankingService) GetAccountByNumber(ctx context.Context, accountNumber int64) (domain.Account, error) {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (s *BankingService) ListCustomerAccounts(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		logger.Error("banking service list customer accounts failed", err, nil)
		return nil, err
	}

	return customers, nil
}

func (s *BankingService) FindCustomerAccounts(ctx context.Context, customerName string) ([]domain.Customer, error) {
	customers, err := s.customerRepo.FindByName(ctx, strings.TrimSpace(customerName))
	if err != nil {
		logger.Error("banking service find customer accounts failed", err, logger.Fields{
			"customerName": customerName,
		})
		return nil, err
	}

	return customers, nil
}

// CreateCustomerAccount persists a new customer together with its accounts.
// Only the first submitted account receives a generated account number: the
// endpoint is a single-account-per-call design.
func (s *BankingService) CreateCustomerAccount(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("banking service create customer account request", logger.Fields{
		"customerName": customer.Name,
		"accounts":     len(customer.Accounts),
	})

	if len(customer.Accounts) == 0 {
		return domain.Customer{}, fmt.Errorf("customer must include at least one account")
	}

	if customer.Accounts[0].Balance.GreaterThan(s.limits.DepositLimit) {
		err := fmt.Errorf("%w: balanceAmt must not exceed %s per transaction",
			domain.ErrDepositLimitExceeded, s.limits.DepositLimit)
		logger.Error("banking service create customer account rejected", err, logger.Fields{
			"customerName": customer.Name,
		})
		return domain.Customer{}, err
	}

	customer.Accounts[0].AccountNumber = generateAccountNumber()

	created, err := s.customerRepo.Save(ctx, customer)
	if err != nil {
		logger.Error("banking service create customer account repository failed", err, logger.Fields{
			"customerName": customer.Name,
		})
		return domain.Customer{}, err
	}

	logger.Info("banking service create customer account success", logger.Fields{
		"customerId":    created.ID,
		"accountNumber": created.Accounts[0].AccountNumber,
	})

	return created, nil
}

// UpdateCustomerAccount upserts the customer record as submitted. Business
// rules apply only on create and on balance-changing operations.
func (s *BankingService) UpdateCustomerAccount(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	updated, err := s.customerRepo.Save(ctx, customer)
	if err != nil {
		logger.Error("banking service update customer account failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return domain.Customer{}, err
	}

	logger.Info("banking service update customer account success", logger.Fields{
		"customerId": updated.ID,
	})

	return updated, nil
}

func (s *BankingService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("banking service deposit request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount,
	})

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("banking service deposit account lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	if amount.GreaterThan(s.limits.DepositLimit) {
		err := fmt.Errorf("%w: deposit amount must not exceed %s per transaction",
			domain.ErrDepositLimitExceeded, s.limits.DepositLimit)
		logger.Error("banking service deposit rejected", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	account.Balance = account.Balance.Add(amount)

	updated, err := s.accountRepo.Save(ctx, account)
	if err != nil {
		logger.Error("banking service deposit save failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	logger.Info("banking service deposit success", logger.Fields{
		"accountNumber": updated.AccountNumber,
		"balanceAmt":    updated.Balance,
	})

	return updated, nil
}

// Withdraw applies the minimum-balance floor first, then the
// maximum-withdrawal fraction of the current balance. When both are
// violated the minimum-balance error is the one reported.
func (s *BankingService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("banking service withdraw request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount,
	})

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("banking service withdraw account lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	remaining := account.Balance.Sub(amount)
	if remaining.LessThan(s.limits.MinimumBalance) {
		err := fmt.Errorf("%w: account balance must not drop below %s, withdraw a lesser amount",
			domain.ErrMinimumBalanceViolation, s.limits.MinimumBalance)
		logger.Error("banking service withdraw rejected", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	maxWithdrawal := account.Balance.Mul(s.limits.MaxWithdrawalPercent).Div(oneHundred)
	if amount.GreaterThan(maxWithdrawal) {
		err := fmt.Errorf("%w: cannot withdraw more than %s%% of the balance amount, withdraw a lesser amount",
			domain.ErrExcessiveWithdrawal, s.limits.MaxWithdrawalPercent)
		logger.Error("banking service withdraw rejected", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	account.Balance = remaining

	updated, err := s.accountRepo.Save(ctx, account)
	if err != nil {
		logger.Error("banking service withdraw save failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	logger.Info("banking service withdraw success", logger.Fields{
		"accountNumber": updated.AccountNumber,
		"balanceAmt":    updated.Balance,
	})

	return updated, nil
}

// DeleteAccount scans the whole customer population for the matching
// account number. There is no secondary index at this layer, which is fine
// at this scale. Only the matched account is removed, the rest of the
// owner's accounts are untouched.
func (s *BankingService) DeleteAccount(ctx context.Context, accountNumber int64) (domain.Account, error) {
	logger.Info("banking service delete account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		logger.Error("banking service delete account customer scan failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}

	for ci := range customers {
		for ai, account := range customers[ci].Accounts {
			if account.AccountNumber != accountNumber {
				continue
			}

			if err := s.accountRepo.Delete(ctx, account); err != nil {
				logger.Error("banking service delete account failed", err, logger.Fields{
					"accountNumber": accountNumber,
				})
				return domain.Account{}, err
			}

			customers[ci].Accounts = append(customers[ci].Accounts[:ai], customers[ci].Accounts[ai+1:]...)
			if _, err := s.customerRepo.SaveAll(ctx, customers); err != nil {
				logger.Error("banking service delete account save customers failed", err, logger.Fields{
					"accountNumber": accountNumber,
				})
				return domain.Account{}, err
			}

			logger.Info("banking service delete account success", logger.Fields{
				"accountNumber": accountNumber,
				"customerId":    customers[ci].ID,
			})

			return account, nil
		}
	}

	err = fmt.Errorf("%w: no account with number %d", domain.ErrRecordNotFound, accountNumber)
	logger.Error("banking service delete account not found", err, logger.Fields{
		"accountNumber": accountNumber,
	})

	return domain.Account{}, err
}

func generateAccountNumber() int64 {
	return accountNumberMin + rand.Int64N(accountNumberMax-accountNumberMin)
}
