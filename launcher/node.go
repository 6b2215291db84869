package launcher

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"okinoko_presale/contract"
	"okinoko_presale/sdk"
)

// node is the local host: one leveldb holding contract state, balances and the block height.
type node struct {
	db     *sdk.LevelState
	ledger *sdk.Ledger
	clock  *sdk.StateClock
	host   contract.Host
	log    *logrus.Logger
}

func openNode(cfg Config, log *logrus.Logger) (*node, error) {
	db, err := sdk.OpenLevelState(filepath.Join(cfg.DataDir, "presale"))
	if err != nil {
		return nil, err
	}
	ledger := sdk.NewLedger(db)
	clock := sdk.NewStateClock(db)
	return &node{
		db:     db,
		ledger: ledger,
		clock:  clock,
		log:    log,
		host: contract.Host{
			State:  db,
			Value:  sdk.ValueView{Ledger: ledger, Custody: cfg.Self},
			Tokens: sdk.TokenView{Ledger: ledger, Custody: cfg.Self},
			Clock:  clock,
			Logger: log,
			Self:   cfg.Self,
		},
	}, nil
}

// presale attaches to the deployed sale, with a hint when nothing is deployed yet.
func (n *node) presale() (*contract.Presale, error) {
	p, err := contract.Open(n.host)
	if errors.Is(err, contract.ErrNotInitialized) {
		return nil, fmt.Errorf("%w: run deploy first", err)
	}
	return p, err
}

func (n *node) Close() error {
	return n.db.Close()
}
