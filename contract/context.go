package contract

import (
	"errors"
	"fmt"
	"strconv"

	"okinoko_presale/sdk"
)

// txn is scoped to one contract call. It carries the env snapshot taken at entry, reads
// through to the host state, buffers every write in a batch and remembers how to undo the
// ledger movements already made. Nothing reaches the state before commit.
type txn struct {
	st     sdk.State
	batch  *sdk.Batch
	env    sdk.Env
	seq    uint64
	undo   []func() error
	events []string
}

func newTxn(st sdk.State, env sdk.Env) *txn {
	return &txn{st: st, batch: sdk.NewBatch(), env: env}
}

// get prefers pending writes so later checks in the same call see earlier effects.
func (tx *txn) get(key string) (*string, error) {
	if v, ok := tx.batch.Lookup(key); ok {
		return v, nil
	}
	return tx.st.Get(key)
}

func (tx *txn) set(key, value string) { tx.batch.Set(key, value) }

func (tx *txn) del(key string) { tx.batch.Delete(key) }

// onRollback registers the inverse of a ledger movement that already happened.
func (tx *txn) onRollback(fn func() error) {
	tx.undo = append(tx.undo, fn)
}

// rollback replays the inverses newest first and reports every one that failed.
func (tx *txn) rollback() error {
	var errs []error
	for i := len(tx.undo) - 1; i >= 0; i-- {
		if err := tx.undo[i](); err != nil {
			errs = append(errs, err)
		}
	}
	tx.undo = nil
	return errors.Join(errs...)
}

// commit writes the batch in one go; a failed write undoes the ledger side as well.
func (tx *txn) commit() error {
	if tx.batch.Len() == 0 {
		return nil
	}
	if err := tx.st.Write(tx.batch); err != nil {
		err = fmt.Errorf("commit of %d keys failed: %w", tx.batch.Len(), err)
		if rbErr := tx.rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("compensation failed: %w", rbErr))
		}
		return err
	}
	return nil
}

func (tx *txn) emit(line string) {
	tx.events = append(tx.events, line)
}

func (tx *txn) sender() sdk.Address { return tx.env.Sender }

func (tx *txn) block() uint64 { return tx.env.BlockHeight }

// loadCallSeq reads how many calls have committed against this state so far.
func (tx *txn) loadCallSeq() (uint64, error) {
	ptr, err := tx.get(callSeqKey())
	if err != nil {
		return 0, err
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt call sequence: %w", err)
	}
	return n, nil
}

func (tx *txn) saveCallSeq(n uint64) {
	tx.set(callSeqKey(), strconv.FormatUint(n, 10))
}
