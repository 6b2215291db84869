package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

func requireFailureBranch(st *PresaleState) error {
	if !st.Finalized || st.DistributionStarted {
		return reject(ErrFailureBranchOnly, "outcome %s", outcomeOf(st))
	}
	return nil
}

// ClaimRefund pays the caller's deposit back after a failed sale and zeroes it. A second
// call is rejected with ErrNothingToRefund.
func (p *Presale) ClaimRefund(caller sdk.Address) error {
	return p.exec("refund", caller, func(tx *txn) error {
		st, err := tx.loadPresaleState()
		if err != nil {
			return err
		}
		if err := requireFailureBranch(st); err != nil {
			return err
		}
		part, known, err := tx.loadParticipant(caller)
		if err != nil {
			return err
		}
		if !known {
			return reject(ErrNotParticipant, "%s never deposited", caller)
		}
		if part.Deposit == 0 {
			return reject(ErrNothingToRefund, "%s already refunded %d", caller, part.Refunded)
		}
		amount := part.Deposit
		if err := p.host.Value.TransferOut(caller, amount); err != nil {
			return fmt.Errorf("value transfer to %s: %w", caller, err)
		}
		tx.onRollback(func() error { return p.host.Value.TransferIn(caller, amount) })

		part.Refunded += amount
		part.Deposit = 0
		tx.saveParticipant(part)
		emitRefundEvent(tx, caller, amount)
		return nil
	})
}

// WithdrawTokensWhenFail hands every sale token held in custody back to the administrator.
// Only the failure branch allows it; after a success the tokens back allocations.
func (p *Presale) WithdrawTokensWhenFail(caller sdk.Address, token sdk.Asset) error {
	return p.exec("withdraw", caller, func(tx *txn) error {
		if err := requireOwner(&p.cfg, caller); err != nil {
			return err
		}
		if err := requireSaleToken(&p.cfg, token); err != nil {
			return err
		}
		st, err := tx.loadPresaleState()
		if err != nil {
			return err
		}
		if err := requireFailureBranch(st); err != nil {
			return err
		}
		held, err := p.custodyBalance()
		if err != nil {
			return err
		}
		if held == 0 {
			return reject(ErrNothingToWithdraw, "custody holds no %s", token)
		}
		if err := p.host.Tokens.TransferOut(token, caller, held); err != nil {
			return fmt.Errorf("token transfer to %s: %w", caller, err)
		}
		tx.onRollback(func() error { return p.host.Tokens.MintOrTransferIn(token, caller, held) })
		emitTokensMovedEvent(tx, false, caller, token, held)
		return nil
	})
}
