package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/banking-record-service/internal/adapter/repository/memory"
	"github.com/api-sage/banking-record-service/internal/config"
	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/api-sage/banking-record-service/internal/usecase/service_interfaces"
	"github.com/api-sage/banking-record-service/internal/usecase/services"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.BankingService = (*services.BankingService)(nil)

func newBankingService() (*services.BankingService, *memory.Store) {
	store := memory.NewStore()
	limits := config.Limits{
		DepositLimit:         decimal.RequireFromString("10000.0"),
		MinimumBalance:       decimal.RequireFromString("100.0"),
		MaxWithdrawalPercent: decimal.NewFromInt(90),
	}

	return services.NewBankingService(store.Customers(), store.Accounts(), limits), store
}

func seedCustomerAccount(t *testing.T, svc *services.BankingService, balance string) domain.Account {
	t.Helper()

	created, err := svc.CreateCustomerAccount(context.Background(), domain.Customer{
		Name:  "Vikram",
		Email: "vikram@example.com",
		Accounts: []domain.Account{
			{Balance: decimal.RequireFromString(balance)},
		},
	})
	if err != nil {
		t.Fatalf("seed customer account: %v", err)
	}

	return created.Accounts[0]
}

func TestDepositAddsAmountToBalance(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "1000.0")

	updated, err := svc.Deposit(context.Background(), account.AccountNumber, decimal.RequireFromString("500.0"))
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	if !updated.Balance.Equal(decimal.RequireFromString("1500.0")) {
		t.Fatalf("balance after deposit = %s, want 1500", updated.Balance)
	}

	stored, err := svc.GetAccountByNumber(context.Background(), account.AccountNumber)
	if err != nil {
		t.Fatalf("get account after deposit: %v", err)
	}
	if !stored.Balance.Equal(updated.Balance) {
		t.Fatalf("stored balance = %s, want %s", stored.Balance, updated.Balance)
	}
}

func TestDepositAtLimitAllowed(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "1000.0")

	updated, err := svc.Deposit(context.Background(), account.AccountNumber, decimal.RequireFromString("10000.0"))
	if err != nil {
		t.Fatalf("deposit at limit: %v", err)
	}

	if !updated.Balance.Equal(decimal.RequireFromString("11000.0")) {
		t.Fatalf("balance after deposit = %s, want 11000", updated.Balance)
	}
}

func TestDepositOverLimitRejected(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "1000.0")

	_, err := svc.Deposit(context.Background(), account.AccountNumber, decimal.RequireFromString("10010.0"))
	if !errors.Is(err, domain.ErrDepositLimitExceeded) {
		t.Fatalf("deposit over limit error = %v, want ErrDepositLimitExceeded", err)
	}

	stored, err := svc.GetAccountByNumber(context.Background(), account.AccountNumber)
	if err != nil {
		t.Fatalf("get account after rejected deposit: %v", err)
	}
	if !stored.Balance.Equal(decimal.RequireFromString("1000.0")) {
		t.Fatalf("balance after rejected deposit = %s, want 1000 unchanged", stored.Balance)
	}
}

func TestDepositUnknownAccountNotFound(t *testing.T) {
	svc, _ := newBankingService()

	_, err := svc.Deposit(context.Background(), 12345678901, decimal.RequireFromString("10.0"))
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("deposit to unknown account error = %v, want ErrRecordNotFound", err)
	}
}

func TestWithdrawReducesBalance(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "1000.0")

	updated, err := svc.Withdraw(context.Background(), account.AccountNumber, decimal.RequireFromString("100.0"))
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	if !updated.Balance.Equal(decimal.RequireFromString("900.0")) {
		t.Fatalf("balance after withdraw = %s, want 900", updated.Balance)
	}
}

func TestWithdrawExactlyAtBothBoundsAllowed(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "1000.0")

	// 900 is exactly 90% of 1000 and leaves exactly the minimum balance.
	updated, err := svc.Withdraw(context.Background(), account.AccountNumber, decimal.RequireFromString("900.0"))
	if err != nil {
		t.Fatalf("withdraw at bounds: %v", err)
	}

	if !updated.Balance.Equal(decimal.RequireFromString("100.0")) {
		t.Fatalf("balance after withdraw = %s, want 100", updated.Balance)
	}
}

func TestWithdrawBelowMinimumBalanceRejected(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "1000.0")

	_, err := svc.Withdraw(context.Background(), account.AccountNumber, decimal.RequireFromString("1000.0"))
	if !errors.Is(err, domain.ErrMinimumBalanceViolation) {
		t.Fatalf("withdraw to zero error = %v, want ErrMinimumBalanceViolation", err)
	}

	stored, err := svc.GetAccountByNumber(context.Background(), account.AccountNumber)
	if err != nil {
		t.Fatalf("get account after rejected withdraw: %v", err)
	}
	if !stored.Balance.Equal(decimal.RequireFromString("1000.0")) {
		t.Fatalf("balance after rejected withdraw = %s, want 1000 unchanged", stored.Balance)
	}
}

func TestWithdrawOverMaxFractionRejected(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "10000.0")

	// 9500 leaves 500, above the floor, but exceeds 90% of 10000.
	_, err := svc.Withdraw(context.Background(), account.AccountNumber, decimal.RequireFromString("9500.0"))
	if !errors.Is(err, domain.ErrExcessiveWithdrawal) {
		t.Fatalf("withdraw over fraction error = %v, want ErrExcessiveWithdrawal", err)
	}
}

func TestWithdrawBothRulesViolatedMinimumBalanceWins(t *testing.T) {
	svc, _ := newBankingService()
	account := seedCustomerAccount(t, svc, "1000.0")

	// 950 exceeds 90% of 1000 and would leave only 50.
	_, err := svc.Withdraw(context.Background(), account.AccountNumber, decimal.RequireFromString("950.0"))
	if !errors.Is(err, domain.ErrMinimumBalanceViolation) {
		t.Fatalf("withdraw violating both rules error = %v, want ErrMinimumBalanceViolation", err)
	}
}

func TestWithdrawUnknownAccountNotFound(t *testing.T) {
	svc, _ := newBankingService()

	_, err := svc.Withdraw(context.Background(), 12345678901, decimal.RequireFromString("10.0"))
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("withdraw from unknown account error = %v, want ErrRecordNotFound", err)
	}
}

func TestCreateAssignsElevenDigitAccountNumber(t *testing.T) {
	svc, _ := newBankingService()

	created, err := svc.CreateCustomerAccount(context.Background(), domain.Customer{
		Name: "Asha",
		Accounts: []domain.Account{
			{AccountNumber: 42, Balance: decimal.RequireFromString("500.0")},
		},
	})
	if err != nil {
		t.Fatalf("create customer account: %v", err)
	}

	number := created.Accounts[0].AccountNumber
	if number < 10_000_000_000 || number >= 99_999_999_999 {
		t.Fatalf("generated account number %d outside 11-digit range", number)
	}
	if number == 42 {
		t.Fatal("generated account number must replace the supplied value")
	}
	if created.ID == "" || created.Accounts[0].ID == "" {
		t.Fatal("persisted customer and account must carry assigned identities")
	}
}

func TestCreateNumbersOnlyFirstAccount(t *testing.T) {
	svc, _ := newBankingService()

	created, err := svc.CreateCustomerAccount(context.Background(), domain.Customer{
		Name: "Asha",
		Accounts: []domain.Account{
			{Balance: decimal.RequireFromString("500.0")},
			{Balance: decimal.RequireFromString("200.0")},
		},
	})
	if err != nil {
		t.Fatalf("create customer account: %v", err)
	}

	if created.Accounts[0].AccountNumber == 0 {
		t.Fatal("first account must receive a generated number")
	}
	if created.Accounts[1].AccountNumber != 0 {
		t.Fatalf("second account number = %d, want untouched", created.Accounts[1].AccountNumber)
	}
}

func TestCreateOverDepositLimitRejectedAndNothingPersisted(t *testing.T) {
	svc, _ := newBankingService()

	_, err := svc.CreateCustomerAccount(context.Background(), domain.Customer{
		Name: "Asha",
		Accounts: []domain.Account{
			{Balance: decimal.RequireFromString("10000.01")},
		},
	})
	if !errors.Is(err, domain.ErrDepositLimitExceeded) {
		t.Fatalf("create over limit error = %v, want ErrDepositLimitExceeded", err)
	}

	customers, err := svc.ListCustomerAccounts(context.Background())
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("customer count after rejected create = %d, want 0", len(customers))
	}
}

func TestCreateWithoutAccountsRejected(t *testing.T) {
	svc, _ := newBankingService()

	_, err := svc.CreateCustomerAccount(context.Background(), domain.Customer{Name: "Asha"})
	if err == nil {
		t.Fatal("expected error for customer without accounts")
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	svc, _ := newBankingService()
	seedCustomerAccount(t, svc, "1000.0")

	customers, err := svc.ListCustomerAccounts(context.Background())
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	customer := customers[0]
	customer.Name = "Vikram Rao"

	first, err := svc.UpdateCustomerAccount(context.Background(), customer)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}

	second, err := svc.UpdateCustomerAccount(context.Background(), customer)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if first.ID != second.ID || first.Name != second.Name {
		t.Fatalf("repeated update diverged: %+v vs %+v", first, second)
	}
	if len(first.Accounts) != len(second.Accounts) {
		t.Fatalf("repeated update changed account count: %d vs %d", len(first.Accounts), len(second.Accounts))
	}
	if !first.Accounts[0].Balance.Equal(second.Accounts[0].Balance) {
		t.Fatalf("repeated update changed balance: %s vs %s", first.Accounts[0].Balance, second.Accounts[0].Balance)
	}

	stored, err := svc.ListCustomerAccounts(context.Background())
	if err != nil {
		t.Fatalf("list customers after updates: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("customer count after updates = %d, want 1", len(stored))
	}
	if stored[0].Name != "Vikram Rao" {
		t.Fatalf("stored name = %q, want %q", stored[0].Name, "Vikram Rao")
	}
}

func TestDeleteRemovesOnlyMatchedAccount(t *testing.T) {
	svc, store := newBankingService()

	_, err := store.Customers().Save(context.Background(), domain.Customer{
		Name: "Meera",
		Accounts: []domain.Account{
			{AccountNumber: 11111111111, Balance: decimal.RequireFromString("1000.0")},
			{AccountNumber: 22222222222, Balance: decimal.RequireFromString("2000.0")},
		},
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	deleted, err := svc.DeleteAccount(context.Background(), 11111111111)
	if err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if deleted.AccountNumber != 11111111111 {
		t.Fatalf("deleted account number = %d, want 11111111111", deleted.AccountNumber)
	}

	customers, err := svc.ListCustomerAccounts(context.Background())
	if err != nil {
		t.Fatalf("list customers after delete: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("customer count after delete = %d, want 1", len(customers))
	}
	if len(customers[0].Accounts) != 1 {
		t.Fatalf("account count after delete = %d, want only the sibling left", len(customers[0].Accounts))
	}
	if customers[0].Accounts[0].AccountNumber != 22222222222 {
		t.Fatalf("remaining account number = %d, want 22222222222", customers[0].Accounts[0].AccountNumber)
	}
}

func TestDeleteUnknownAccountNotFound(t *testing.T) {
	svc, _ := newBankingService()
	seedCustomerAccount(t, svc, "1000.0")

	_, err := svc.DeleteAccount(context.Background(), 12345678901)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("delete unknown account error = %v, want ErrRecordNotFound", err)
	}
}

func TestGetAccountByNumberMiss(t *testing.T) {
	svc, _ := newBankingService()

	_, err := svc.GetAccountByNumber(context.Background(), 12345678901)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("get unknown account error = %v, want ErrRecordNotFound", err)
	}
}

func TestFindCustomerAccountsPartialName(t *testing.T) {
	svc, _ := newBankingService()
	seedCustomerAccount(t, svc, "1000.0")

	matched, err := svc.FindCustomerAccounts(context.Background(), "vik")
	if err != nil {
		t.Fatalf("find customers: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("matched customers = %d, want 1", len(matched))
	}

	none, err := svc.FindCustomerAccounts(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("find customers with no match: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("matched customers = %d, want 0", len(none))
	}
}

func TestListCustomerAccountsEmpty(t *testing.T) {
	svc, _ := newBankingService()

	customers, err := svc.ListCustomerAccounts(context.Background())
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("customer count = %d, want 0", len(customers))
	}
}
