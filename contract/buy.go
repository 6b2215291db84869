package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

// Buy deposits amount of the native unit from caller. Checks run in a fixed order and the
// first failing one decides the rejection: window, whitelist, min buy, per user cap, hardcap.
func (p *Presale) Buy(caller sdk.Address, amount uint64) error {
	return p.exec("buy", caller, func(tx *txn) error {
		if !caller.IsValid() {
			return reject(ErrInvalidAddress, "buyer %q", caller)
		}
		st, err := tx.loadPresaleState()
		if err != nil {
			return err
		}
		phase, err := requireBuyWindow(&p.cfg, st, tx.block())
		if err != nil {
			return err
		}
		if phase == PhaseWhitelist {
			listed, err := tx.isWhitelisted(caller)
			if err != nil {
				return err
			}
			if !listed {
				return reject(ErrNotWhitelisted, "%s during whitelist phase", caller)
			}
		}
		if amount < p.cfg.MinBuy {
			return reject(ErrAmountTooSmall, "%d below minimum %d", amount, p.cfg.MinBuy)
		}
		part, known, err := tx.loadParticipant(caller)
		if err != nil {
			return err
		}
		if amount > p.cfg.MaxBuy-part.Deposit {
			return reject(ErrPerUserCapExceeded, "deposit %d + %d above %d", part.Deposit, amount, p.cfg.MaxBuy)
		}
		if amount > p.cfg.Hardcap-st.TotalRaised {
			return reject(ErrHardcapExceeded, "raised %d + %d above %d", st.TotalRaised, amount, p.cfg.Hardcap)
		}

		if err := p.host.Value.TransferIn(caller, amount); err != nil {
			return fmt.Errorf("value transfer from %s: %w", caller, err)
		}
		tx.onRollback(func() error { return p.host.Value.TransferOut(caller, amount) })

		if !known {
			tx.registerParticipant(st, caller)
		}
		part.Deposit += amount
		st.TotalRaised += amount
		tx.saveParticipant(part)
		tx.savePresaleState(st)
		emitBuyEvent(tx, caller, amount, part.Deposit, st.TotalRaised)
		return nil
	})
}
