package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

// custodyBalance reads how many sale tokens the contract currently holds.
func (p *Presale) custodyBalance() (uint64, error) {
	held, err := p.host.Tokens.BalanceOf(p.cfg.Token, p.host.Self)
	if err != nil {
		return 0, fmt.Errorf("custody balance: %w", err)
	}
	return held, nil
}

// reserveTokens makes custody cover need, pulling only the missing part from the administrator.
func (p *Presale) reserveTokens(tx *txn, from sdk.Address, need uint64) error {
	held, err := p.custodyBalance()
	if err != nil {
		return err
	}
	if held >= need {
		return nil
	}
	shortfall := need - held
	if err := p.host.Tokens.MintOrTransferIn(p.cfg.Token, from, shortfall); err != nil {
		return fmt.Errorf("reserve %d %s from %s: %w", shortfall, p.cfg.Token, from, err)
	}
	tx.onRollback(func() error { return p.host.Tokens.TransferOut(p.cfg.Token, from, shortfall) })
	emitTokensMovedEvent(tx, true, from, p.cfg.Token, shortfall)
	return nil
}

// FundTokens lets the administrator park sale supply in custody ahead of finalize.
func (p *Presale) FundTokens(caller sdk.Address, token sdk.Asset, amount uint64) error {
	return p.exec("fund", caller, func(tx *txn) error {
		if err := requireOwner(&p.cfg, caller); err != nil {
			return err
		}
		if err := requireSaleToken(&p.cfg, token); err != nil {
			return err
		}
		if amount == 0 {
			return reject(ErrAmountTooSmall, "funding amount must be positive")
		}
		st, err := tx.loadPresaleState()
		if err != nil {
			return err
		}
		if st.Finalized {
			return reject(ErrAlreadyFinalized, "outcome %s", outcomeOf(st))
		}
		if err := p.host.Tokens.MintOrTransferIn(token, caller, amount); err != nil {
			return fmt.Errorf("token transfer from %s: %w", caller, err)
		}
		tx.onRollback(func() error { return p.host.Tokens.TransferOut(token, caller, amount) })
		emitTokensMovedEvent(tx, true, caller, token, amount)
		return nil
	})
}
