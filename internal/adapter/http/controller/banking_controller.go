package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/banking-record-service/internal/adapter/http/models"
	"github.com/api-sage/banking-record-service/internal/commons"
	"github.com/api-sage/banking-record-service/internal/domain"
	"github.com/gorilla/mux"
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

type BankingController struct {
	service BankingService
}

func NewBankingController(service BankingService) *BankingController {
	return &BankingController{service: service}
}

func (c *BankingController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/account", c.getAccount).Methods(http.MethodGet)
	router.HandleFunc("/account", c.createCustomerAccount).Methods(http.MethodPost)
	router.HandleFunc("/account", c.updateCustomerAccount).Methods(http.MethodPut)
	router.HandleFunc("/account", c.deleteAccount).Methods(http.MethodDelete)
	router.HandleFunc("/all-cust-accts", c.listCustomerAccounts).Methods(http.MethodGet)
	router.HandleFunc("/cust-accounts", c.findCustomerAccounts).Methods(http.MethodGet)
	router.HandleFunc("/deposit", c.deposit).Methods(http.MethodPut)
	router.HandleFunc("/withdraw", c.withdraw).Methods(http.MethodPut)
}

func (c *BankingController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountNumber, err := accountNumberParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err, start)
		return
	}

	account, err := c.service.GetAccountByNumber(r.Context(), accountNumber)
	if err != nil {
		// A miss on the lookup endpoint is a 200 with a null body.
		if errors.Is(err, domain.ErrRecordNotFound) {
			writeJSON(w, http.StatusOK, nil)
			logResponse(r, http.StatusOK, nil, start)
			return
		}
		writeError(w, r, statusForError(err), err, start)
		return
	}

	payload := models.AccountFromDomain(account)
	writeJSON(w, http.StatusOK, payload)
	logResponse(r, http.StatusOK, payload, start)
}

func (c *BankingController) listCustomerAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customers, err := c.service.ListCustomerAccounts(r.Context())
	if err != nil {
		writeError(w, r, statusForError(err), err, start)
		return
	}

	payload := models.CustomersFromDomain(customers)
	writeJSON(w, http.StatusOK, payload)
	logResponse(r, http.StatusOK, payload, start)
}

func (c *BankingController) findCustomerAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerName := strings.TrimSpace(r.URL.Query().Get("customerName"))
	if customerName == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("customerName is required"), start)
		return
	}

	customers, err := c.service.FindCustomerAccounts(r.Context(), customerName)
	if err != nil {
		writeError(w, r, statusForError(err), err, start)
		return
	}

	payload := models.CustomersFromDomain(customers)
	writeJSON(w, http.StatusOK, payload)
	logResponse(r, http.StatusOK, payload, start)
}

func (c *BankingController) createCustomerAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var payload models.CustomerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logError(r, err, nil)
		writeError(w, r, http.StatusBadRequest, errors.New("invalid request body"), start)
		return
	}
	logRequest(r, payload)

	if err := payload.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err, start)
		return
	}

	created, err := c.service.CreateCustomerAccount(r.Context(), payload.ToDomain())
	if err != nil {
		writeError(w, r, statusForError(err), err, start)
		return
	}

	response := models.CustomerFromDomain(created)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *BankingController) updateCustomerAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var payload models.CustomerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logError(r, err, nil)
		writeError(w, r, http.StatusBadRequest, errors.New("invalid request body"), start)
		return
	}
	logRequest(r, payload)

	updated, err := c.service.UpdateCustomerAccount(r.Context(), payload.ToDomain())
	if err != nil {
		writeError(w, r, statusForError(err), err, start)
		return
	}

	response := models.CustomerFromDomain(updated)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *BankingController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountNumber, err := accountNumberParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err, start)
		return
	}

	amount, err := amountParam(r, "depositAmount")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err, start)
		return
	}

	account, err := c.service.Deposit(r.Context(), accountNumber, amount)
	if err != nil {
		writeError(w, r, statusForError(err), err, start)
		return
	}

	payload := models.AccountFromDomain(account)
	writeJSON(w, http.StatusOK, payload)
	logResponse(r, http.StatusOK, payload, start)
}

func (c *BankingController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountNumber, err := accountNumberParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err, start)
		return
	}

	amount, err := amountParam(r, "withdrawAmount")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err, start)
		return
	}

	account, err := c.service.Withdraw(r.Context(), accountNumber, amount)
	if err != nil {
		writeError(w, r, statusForError(err), err, start)
		return
	}

	payload := models.AccountFromDomain(account)
	writeJSON(w, http.StatusOK, payload)
	logResponse(r, http.StatusOK, payload, start)
}

func (c *BankingController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountNumber, err := accountNumberParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err, start)
		return
	}

	account, err := c.service.DeleteAccount(r.Context(), accountNumber)
	if err != nil {
		writeError(w, r, statusForError(err), err, start)
		return
	}

	payload := models.AccountFromDomain(account)
	writeJSON(w, http.StatusOK, payload)
	logResponse(r, http.StatusOK, payload, start)
}

func accountNumberParam(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("accountNum"))
	if raw == "" {
		return 0, errors.New("accountNum is required")
	}

	accountNumber, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("accountNum must be numeric")
	}

	return accountNumber, nil
}

func amountParam(r *http.Request, name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return decimal.Zero, errors.New(name + " is required")
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New(name + " must be numeric")
	}

	return amount, nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDepositLimitExceeded),
		errors.Is(err, domain.ErrMinimumBalanceViolation),
		errors.Is(err, domain.ErrExcessiveWithdrawal):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error, start time.Time) {
	logError(r, err, nil)
	body := commons.NewErrorMessage(status, err.Error())
	writeJSON(w, status, body)
	logResponse(r, status, body, start)
}
