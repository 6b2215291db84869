package contract

import "okinoko_presale/sdk"

// checkWhitelistBatch validates the whole batch before anything is touched.
func checkWhitelistBatch(addresses []sdk.Address) error {
	if len(addresses) == 0 {
		return reject(ErrEmptyWhitelistBatch, "no identities given")
	}
	if len(addresses) > MaxWhitelistBatch {
		return reject(ErrWhitelistBatchLimit, "%d identities, max %d", len(addresses), MaxWhitelistBatch)
	}
	for _, addr := range addresses {
		if !addr.IsValid() {
			return reject(ErrInvalidAddress, "%q", addr)
		}
	}
	return nil
}

// addWhitelistEntries stores approvals for provided addresses and returns the new ones.
func (tx *txn) addWhitelistEntries(addresses []sdk.Address) ([]sdk.Address, error) {
	added := make([]sdk.Address, 0, len(addresses))
	seen := map[sdk.Address]struct{}{}
	for _, addr := range addresses {
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		ok, err := tx.setWhitelistEntry(addr)
		if err != nil {
			return nil, err
		}
		if ok {
			added = append(added, addr)
		}
	}
	return added, nil
}

// removeWhitelistEntries clears approvals for provided addresses and returns the removed set.
func (tx *txn) removeWhitelistEntries(addresses []sdk.Address) ([]sdk.Address, error) {
	removed := make([]sdk.Address, 0, len(addresses))
	seen := map[sdk.Address]struct{}{}
	for _, addr := range addresses {
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		ok, err := tx.deleteWhitelistEntry(addr)
		if err != nil {
			return nil, err
		}
		if ok {
			removed = append(removed, addr)
		}
	}
	return removed, nil
}

// AddToWhitelist approves a single identity. Adding a listed one is a no-op.
func (p *Presale) AddToWhitelist(caller, addr sdk.Address) error {
	_, err := p.AddAddressesToWhitelist(caller, []sdk.Address{addr})
	return err
}

// AddAddressesToWhitelist approves a batch atomically: one invalid identity rejects the
// whole call. Duplicates and already listed identities are skipped; the newly added ones
// are returned.
func (p *Presale) AddAddressesToWhitelist(caller sdk.Address, addresses []sdk.Address) ([]sdk.Address, error) {
	var added []sdk.Address
	err := p.exec("whitelist-add", caller, func(tx *txn) error {
		if err := requireOwner(&p.cfg, caller); err != nil {
			return err
		}
		if err := checkWhitelistBatch(addresses); err != nil {
			return err
		}
		var err error
		if added, err = tx.addWhitelistEntries(addresses); err != nil {
			return err
		}
		if len(added) > 0 {
			emitWhitelistEvent(tx, true, caller, added)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// RemoveFromWhitelist revokes approvals and returns the identities that were listed.
func (p *Presale) RemoveFromWhitelist(caller sdk.Address, addresses []sdk.Address) ([]sdk.Address, error) {
	var removed []sdk.Address
	err := p.exec("whitelist-remove", caller, func(tx *txn) error {
		if err := requireOwner(&p.cfg, caller); err != nil {
			return err
		}
		if err := checkWhitelistBatch(addresses); err != nil {
			return err
		}
		var err error
		if removed, err = tx.removeWhitelistEntries(addresses); err != nil {
			return err
		}
		if len(removed) > 0 {
			emitWhitelistEvent(tx, false, caller, removed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
