package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

// -----------------------------------------------------------------------------
// Contract Configuration State
// -----------------------------------------------------------------------------

// isContractInitialized returns true once a config blob exists.
func (tx *txn) isContractInitialized() (bool, error) {
	ptr, err := tx.get(configKey())
	if err != nil {
		return false, err
	}
	return ptr != nil && *ptr != "", nil
}

// loadContractConfig loads the deployment config, ErrNotInitialized when there is none.
func loadContractConfig(st sdk.State) (*Config, error) {
	ptr, err := st.Get(configKey())
	if err != nil {
		return nil, err
	}
	if ptr == nil || *ptr == "" {
		return nil, ErrNotInitialized
	}
	cfg, err := decodeContractConfig(*ptr)
	if err != nil {
		return nil, fmt.Errorf("corrupt config record: %w", err)
	}
	return cfg, nil
}

func (tx *txn) saveContractConfig(cfg *Config) {
	tx.set(configKey(), encodeConfig(cfg))
}

func decodeContractConfig(data string) (*Config, error) {
	return decodeConfig(data)
}

// -----------------------------------------------------------------------------
// Presale State
// -----------------------------------------------------------------------------

func (tx *txn) loadPresaleState() (*PresaleState, error) {
	ptr, err := tx.get(presaleStateKey())
	if err != nil {
		return nil, err
	}
	if ptr == nil || *ptr == "" {
		return nil, ErrNotInitialized
	}
	st, err := decodePresaleState(*ptr)
	if err != nil {
		return nil, fmt.Errorf("corrupt presale state: %w", err)
	}
	return st, nil
}

func (tx *txn) savePresaleState(st *PresaleState) {
	tx.set(presaleStateKey(), encodePresaleState(st))
}

// isContractOwner returns true if the given address is the sale administrator.
func isContractOwner(cfg *Config, addr sdk.Address) bool {
	return cfg.Owner == addr
}

func requireOwner(cfg *Config, addr sdk.Address) error {
	if !isContractOwner(cfg, addr) {
		return reject(ErrNotAuthorized, "%s is not the administrator", addr)
	}
	return nil
}

func requireSaleToken(cfg *Config, token sdk.Asset) error {
	if token != cfg.Token {
		return reject(ErrInvalidToken, "got %q, sale token is %q", token, cfg.Token)
	}
	return nil
}
