package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

// Claim releases the vested but unclaimed part of the caller's allocation. Each call only
// pays the delta since the previous claim.
func (p *Presale) Claim(caller sdk.Address, token sdk.Asset) error {
	return p.exec("claim", caller, func(tx *txn) error {
		if err := requireSaleToken(&p.cfg, token); err != nil {
			return err
		}
		st, err := tx.loadPresaleState()
		if err != nil {
			return err
		}
		if !st.DistributionStarted {
			return reject(ErrDistributionNotStarted, "outcome %s", outcomeOf(st))
		}
		part, known, err := tx.loadParticipant(caller)
		if err != nil {
			return err
		}
		if !known || part.Allocation == 0 {
			return reject(ErrNotParticipant, "%s has no allocation", caller)
		}
		pct := vestedPercentAt(&p.cfg, st, tx.block())
		amount := claimableFor(part, pct)
		if amount == 0 {
			return reject(ErrNothingToClaim, "claimed %d of %d at %d%%", part.Claimed, part.Allocation, pct)
		}

		if err := p.host.Tokens.TransferOut(token, caller, amount); err != nil {
			return fmt.Errorf("token transfer to %s: %w", caller, err)
		}
		tx.onRollback(func() error { return p.host.Tokens.MintOrTransferIn(token, caller, amount) })

		part.Claimed += amount
		tx.saveParticipant(part)
		emitClaimEvent(tx, caller, amount, part.Claimed, pct)
		return nil
	})
}
