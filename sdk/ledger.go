package sdk

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrZeroAmount          = errors.New("amount must be positive")
)

// balanceKey keeps ledger rows apart from contract keys, which all start with a prefix byte.
func balanceKey(asset Asset, owner Address) string {
	return "bal:" + asset.String() + ":" + owner.String()
}

// Ledger is the host balance book. Every asset (native value and any sale token) lives in the
// same State, one decimal row per (asset, owner).
type Ledger struct {
	mu sync.Mutex
	st State
}

func NewLedger(st State) *Ledger {
	return &Ledger{st: st}
}

func (l *Ledger) balance(asset Asset, owner Address) (uint64, error) {
	ptr, err := l.st.Get(balanceKey(asset, owner))
	if err != nil {
		return 0, err
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt balance row for %s/%s: %w", asset, owner, err)
	}
	return n, nil
}

// Balance reads the current balance, zero for unknown owners.
func (l *Ledger) Balance(asset Asset, owner Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance(asset, owner)
}

// Mint credits amount out of thin air. Only host tooling (faucet, test setup) calls it.
func (l *Ledger) Mint(asset Asset, to Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, err := l.balance(asset, to)
	if err != nil {
		return err
	}
	if cur > ^uint64(0)-amount {
		return fmt.Errorf("mint of %d %s to %s overflows", amount, asset, to)
	}
	return SetObject(l.st, balanceKey(asset, to), strconv.FormatUint(cur+amount, 10))
}

// Transfer moves amount between two owners in one batch.
func (l *Ledger) Transfer(asset Asset, from, to Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	src, err := l.balance(asset, from)
	if err != nil {
		return err
	}
	if src < amount {
		return fmt.Errorf("%w: %s holds %d %s, needs %d", ErrInsufficientBalance, from, src, asset, amount)
	}
	if from == to {
		return nil
	}
	dst, err := l.balance(asset, to)
	if err != nil {
		return err
	}
	if dst > ^uint64(0)-amount {
		return fmt.Errorf("transfer of %d %s to %s overflows", amount, asset, to)
	}
	b := NewBatch()
	b.Set(balanceKey(asset, from), strconv.FormatUint(src-amount, 10))
	b.Set(balanceKey(asset, to), strconv.FormatUint(dst+amount, 10))
	return l.st.Write(b)
}

// ValueView binds the native asset to a custody address, giving the contract its value ledger.
type ValueView struct {
	Ledger  *Ledger
	Custody Address
}

func (v ValueView) TransferIn(from Address, amount uint64) error {
	return v.Ledger.Transfer(AssetNative, from, v.Custody, amount)
}

func (v ValueView) TransferOut(to Address, amount uint64) error {
	return v.Ledger.Transfer(AssetNative, v.Custody, to, amount)
}

func (v ValueView) BalanceOf(owner Address) (uint64, error) {
	return v.Ledger.Balance(AssetNative, owner)
}

// TokenView is the token-ledger side: any non-native asset, custody held by the contract.
type TokenView struct {
	Ledger  *Ledger
	Custody Address
}

// MintOrTransferIn pulls amount of asset from the given owner into custody.
func (v TokenView) MintOrTransferIn(asset Asset, from Address, amount uint64) error {
	return v.Ledger.Transfer(asset, from, v.Custody, amount)
}

func (v TokenView) TransferOut(asset Asset, to Address, amount uint64) error {
	return v.Ledger.Transfer(asset, v.Custody, to, amount)
}

func (v TokenView) BalanceOf(asset Asset, owner Address) (uint64, error) {
	return v.Ledger.Balance(asset, owner)
}
