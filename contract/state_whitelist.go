package contract

import "okinoko_presale/sdk"

// setWhitelistEntry stores an approval and reports whether it was new.
func (tx *txn) setWhitelistEntry(addr sdk.Address) (bool, error) {
	listed, err := tx.isWhitelisted(addr)
	if err != nil || listed {
		return false, err
	}
	tx.set(whitelistKey(addr), "1")
	return true, nil
}

// deleteWhitelistEntry removes an approval and reports whether it existed.
func (tx *txn) deleteWhitelistEntry(addr sdk.Address) (bool, error) {
	listed, err := tx.isWhitelisted(addr)
	if err != nil || !listed {
		return false, err
	}
	tx.del(whitelistKey(addr))
	return true, nil
}

// isWhitelisted reports whether an address holds an approval.
func (tx *txn) isWhitelisted(addr sdk.Address) (bool, error) {
	existing, err := tx.get(whitelistKey(addr))
	if err != nil {
		return false, err
	}
	return existing != nil && *existing != "", nil
}
