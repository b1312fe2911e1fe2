package domain

import "errors"

var ErrRecordNotFound = errors.New("record not found")
var ErrDepositLimitExceeded = errors.New("deposit limit exceeded")
var ErrMinimumBalanceViolation = errors.New("minimum balance violation")
var ErrExcessiveWithdrawal = errors.New("excessive withdrawal")
