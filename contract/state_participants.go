package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

// loadParticipant returns the record for addr; a zero record and false when it never deposited.
func (tx *txn) loadParticipant(addr sdk.Address) (*Participant, bool, error) {
	ptr, err := tx.get(participantKey(addr))
	if err != nil {
		return nil, false, err
	}
	if ptr == nil || *ptr == "" {
		return &Participant{Address: addr}, false, nil
	}
	p, err := decodeParticipant(addr, *ptr)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt participant %s: %w", addr, err)
	}
	return p, true, nil
}

func (tx *txn) saveParticipant(p *Participant) {
	tx.set(participantKey(p.Address), encodeParticipant(p))
}

// registerParticipant appends addr to the ordered index and bumps the count.
func (tx *txn) registerParticipant(st *PresaleState, addr sdk.Address) {
	tx.set(participantIndexKey(st.ParticipantCount), addr.String())
	st.ParticipantCount++
}

// participantAt resolves the i-th depositor.
func (tx *txn) participantAt(i uint64) (sdk.Address, error) {
	ptr, err := tx.get(participantIndexKey(i))
	if err != nil {
		return "", err
	}
	if ptr == nil || *ptr == "" {
		return "", fmt.Errorf("participant index %d missing", i)
	}
	return sdk.Address(*ptr), nil
}

// forEachParticipant walks depositors in first-deposit order.
func (tx *txn) forEachParticipant(st *PresaleState, fn func(p *Participant) error) error {
	for i := uint64(0); i < st.ParticipantCount; i++ {
		addr, err := tx.participantAt(i)
		if err != nil {
			return err
		}
		p, ok, err := tx.loadParticipant(addr)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("participant %s indexed at %d has no record", addr, i)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}
