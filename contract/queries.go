package contract

import "okinoko_presale/sdk"

// GetPresaleInfo returns configuration and aggregate state as seen at the current block.
func (p *Presale) GetPresaleInfo() (PresaleInfo, error) {
	var info PresaleInfo
	err := p.view(func(tx *txn) error {
		st, err := tx.loadPresaleState()
		if err != nil {
			return err
		}
		held, err := p.custodyBalance()
		if err != nil {
			return err
		}
		block := tx.block()
		info = PresaleInfo{
			Config:              p.Config(),
			Initialized:         true,
			CurrentBlock:        block,
			Phase:               PhaseAt(&p.cfg, block).String(),
			Outcome:             outcomeOf(st).String(),
			TotalRaised:         st.TotalRaised,
			ParticipantCount:    st.ParticipantCount,
			Finalized:           st.Finalized,
			DistributionHeight:  st.DistributionHeight,
			DistributionStarted: st.DistributionStarted,
			VestedPercent:       vestedPercentAt(&p.cfg, st, block),
			TokenBalance:        held,
		}
		return nil
	})
	return info, err
}

// GetUserInfo reports deposit, allocation and vesting progress for addr. Unknown identities
// get a zero record rather than an error.
func (p *Presale) GetUserInfo(addr sdk.Address) (UserInfo, error) {
	var info UserInfo
	err := p.view(func(tx *txn) error {
		st, err := tx.loadPresaleState()
		if err != nil {
			return err
		}
		part, _, err := tx.loadParticipant(addr)
		if err != nil {
			return err
		}
		listed, err := tx.isWhitelisted(addr)
		if err != nil {
			return err
		}
		pct := vestedPercentAt(&p.cfg, st, tx.block())
		info = UserInfo{
			Address:       addr,
			Deposit:       part.Deposit,
			Allocation:    part.Allocation,
			Claimed:       part.Claimed,
			Claimable:     claimableFor(part, pct),
			VestedPercent: pct,
			Whitelisted:   listed,
			Refunded:      part.Refunded,
		}
		return nil
	})
	return info, err
}

// GetUserDeposits is the current deposit of addr, 0 when it never bought or was refunded.
func (p *Presale) GetUserDeposits(addr sdk.Address) (uint64, error) {
	var deposit uint64
	err := p.view(func(tx *txn) error {
		part, _, err := tx.loadParticipant(addr)
		if err != nil {
			return err
		}
		deposit = part.Deposit
		return nil
	})
	return deposit, err
}

// IsWhitelisted reports whether addr may buy during the whitelist phase.
func (p *Presale) IsWhitelisted(addr sdk.Address) (bool, error) {
	var listed bool
	err := p.view(func(tx *txn) error {
		var err error
		listed, err = tx.isWhitelisted(addr)
		return err
	})
	return listed, err
}
