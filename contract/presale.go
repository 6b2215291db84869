package contract

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"okinoko_presale/sdk"
)

// ValueLedger moves the native value unit between callers and contract custody.
type ValueLedger interface {
	TransferIn(from sdk.Address, amount uint64) error
	TransferOut(to sdk.Address, amount uint64) error
	BalanceOf(owner sdk.Address) (uint64, error)
}

// TokenLedger moves sale tokens between callers and contract custody.
type TokenLedger interface {
	MintOrTransferIn(asset sdk.Asset, from sdk.Address, amount uint64) error
	TransferOut(asset sdk.Asset, to sdk.Address, amount uint64) error
	BalanceOf(asset sdk.Asset, owner sdk.Address) (uint64, error)
}

// Host bundles everything the sale needs from its environment.
type Host struct {
	State  sdk.State
	Value  ValueLedger
	Tokens TokenLedger
	Clock  sdk.Clock
	Logger logrus.FieldLogger
	// Self is the custody address the ledgers credit for the contract.
	Self sdk.Address
}

func (h *Host) validate() error {
	switch {
	case h.State == nil:
		return errors.New("host state is nil")
	case h.Value == nil:
		return errors.New("host value ledger is nil")
	case h.Tokens == nil:
		return errors.New("host token ledger is nil")
	case h.Clock == nil:
		return errors.New("host clock is nil")
	case !h.Self.IsValid():
		return fmt.Errorf("host custody address %q is invalid", h.Self)
	}
	return nil
}

func (h *Host) logger() logrus.FieldLogger {
	if h.Logger != nil {
		return h.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Presale is one deployed sale. Mutating calls are serialized; queries share a read lock.
type Presale struct {
	mu    sync.RWMutex
	host  Host
	cfg   Config
	log   logrus.FieldLogger
	nonce uint64
}

// Deploy validates cfg and stores it with a zeroed sale state.
func Deploy(host Host, cfg Config) (*Presale, error) {
	if err := host.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Schedule = append(Schedule(nil), cfg.Schedule...)
	p := &Presale{host: host, cfg: cfg, log: host.logger()}
	err := p.exec("init", cfg.Owner, func(tx *txn) error {
		initialized, err := tx.isContractInitialized()
		if err != nil {
			return err
		}
		if initialized {
			return reject(ErrAlreadyInitialized, "a sale is already deployed in this state")
		}
		tx.saveContractConfig(&p.cfg)
		tx.savePresaleState(&PresaleState{})
		emitInitEvent(tx, &p.cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open attaches to a sale deployed earlier in the same state.
func Open(host Host) (*Presale, error) {
	if err := host.validate(); err != nil {
		return nil, err
	}
	cfg, err := loadContractConfig(host.State)
	if err != nil {
		return nil, err
	}
	return &Presale{host: host, cfg: *cfg, log: host.logger()}, nil
}

// Config returns a copy of the deployment configuration.
func (p *Presale) Config() Config {
	cfg := p.cfg
	cfg.Schedule = append(Schedule(nil), p.cfg.Schedule...)
	return cfg
}

// heightSource is implemented by clocks whose read can fail (a height kept in storage).
type heightSource interface {
	Height() (uint64, error)
}

// currentBlock reads the host clock, surfacing storage faults instead of reporting height 0.
func (p *Presale) currentBlock() (uint64, error) {
	if hs, ok := p.host.Clock.(heightSource); ok {
		h, err := hs.Height()
		if err != nil {
			return 0, fmt.Errorf("read block height: %w", err)
		}
		return h, nil
	}
	return p.host.Clock.BlockHeight(), nil
}

// begin snapshots the env for one call; the clock is read exactly once here. The tx id mixes
// in the persisted call sequence so ids stay unique across processes sharing one state.
func (p *Presale) begin(op string, caller sdk.Address) (*txn, error) {
	p.nonce++
	block, err := p.currentBlock()
	if err != nil {
		return nil, err
	}
	tx := newTxn(p.host.State, sdk.Env{BlockHeight: block, Sender: caller})
	if tx.seq, err = tx.loadCallSeq(); err != nil {
		return nil, err
	}
	tx.env.TxId = sdk.NewTxID(
		op,
		caller.String(),
		strconv.FormatUint(block, 10),
		strconv.FormatUint(tx.seq, 10),
		strconv.FormatUint(p.nonce, 10),
	)
	return tx, nil
}

// exec runs fn as one all-or-nothing call: on rejection the ledger side is compensated and
// no key is written; on success the batch commits and the events are logged.
func (p *Presale) exec(op string, caller sdk.Address, fn func(tx *txn) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, err := p.begin(op, caller)
	if err != nil {
		p.log.WithError(err).WithField("op", op).Error("call failed")
		return err
	}
	log := p.log.WithFields(logrus.Fields{
		"tx":    tx.env.TxId,
		"block": tx.env.BlockHeight,
		"op":    op,
	})

	if err := fn(tx); err != nil {
		if rbErr := tx.rollback(); rbErr != nil {
			log.WithError(rbErr).Error("ledger compensation failed")
			err = errors.Join(err, rbErr)
		}
		if CodeOf(err) == 0 {
			log.WithError(err).Error("call failed")
		} else {
			log.WithField("kind", KindOf(err)).Debug(err.Error())
		}
		return err
	}
	tx.saveCallSeq(tx.seq + 1)
	if err := tx.commit(); err != nil {
		log.WithError(err).Error("state commit failed")
		return err
	}
	for _, ev := range tx.events {
		log.Info(ev)
	}
	return nil
}

// view runs fn against a read-only snapshot at the current block.
func (p *Presale) view(fn func(tx *txn) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	block, err := p.currentBlock()
	if err != nil {
		return err
	}
	return fn(newTxn(p.host.State, sdk.Env{BlockHeight: block}))
}
