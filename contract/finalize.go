package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

// Finalize closes the sale. With the softcap met it fixes every allocation and makes sure
// custody holds enough sale tokens, pulling the shortfall from the administrator. Past the
// deadline without the softcap it only flips the sale into the refund branch.
func (p *Presale) Finalize(caller sdk.Address, token sdk.Asset) error {
	return p.exec("finalize", caller, func(tx *txn) error {
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
		if st.Finalized {
			return reject(ErrAlreadyFinalized, "outcome %s", outcomeOf(st))
		}
		if !finalizeEligible(&p.cfg, st, tx.block()) {
			return reject(ErrSaleNotEligibleForFinalize, "raised %d of softcap %d, sale ends at block %d",
				st.TotalRaised, p.cfg.Softcap, p.cfg.EndBlock)
		}

		st.Finalized = true
		if st.TotalRaised < p.cfg.Softcap {
			tx.savePresaleState(st)
			emitFinalizeEvent(tx, caller, OutcomeFailed, st.TotalRaised, 0)
			return nil
		}

		st.DistributionStarted = true
		st.DistributionHeight = tx.block()
		var allocated uint64
		err = tx.forEachParticipant(st, func(part *Participant) error {
			alloc, err := allocationFor(part.Deposit, p.cfg.TokenToSell, st.TotalRaised)
			if err != nil {
				return fmt.Errorf("allocation for %s: %w", part.Address, err)
			}
			part.Allocation = alloc
			allocated += alloc
			tx.saveParticipant(part)
			return nil
		})
		if err != nil {
			return err
		}
		if err := p.reserveTokens(tx, caller, allocated); err != nil {
			return err
		}
		tx.savePresaleState(st)
		emitFinalizeEvent(tx, caller, OutcomeDistributing, st.TotalRaised, allocated)
		return nil
	})
}
