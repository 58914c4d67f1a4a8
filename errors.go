package vendingfsm

import "errors"

var (
	ErrInvalidAmount   = errors.New("coin amount must be positive")
	ErrRejectedCoin    = errors.New("coin rejected")
	ErrBalanceOverflow = errors.New("coin would overflow balance")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidStock    = errors.New("stock must not be negative")
)
