package launcher

import (
	"sync"

	"github.com/sirupsen/logrus"

	"okinoko_presale/contract"
	"okinoko_presale/sdk"
)

// sharedReader answers API queries by opening the database per request, so the leveldb lock
// is only held while a query runs and other commands can keep writing between requests.
type sharedReader struct {
	mu  sync.Mutex
	cfg Config
	log *logrus.Logger
}

func newSharedReader(cfg Config, log *logrus.Logger) *sharedReader {
	return &sharedReader{cfg: cfg, log: log}
}

func (r *sharedReader) with(fn func(p *contract.Presale) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := openNode(r.cfg, r.log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := n.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	p, err := n.presale()
	if err != nil {
		return err
	}
	return fn(p)
}

func (r *sharedReader) GetPresaleInfo() (info contract.PresaleInfo, err error) {
	err = r.with(func(p *contract.Presale) error {
		info, err = p.GetPresaleInfo()
		return err
	})
	return info, err
}

func (r *sharedReader) GetUserInfo(addr sdk.Address) (info contract.UserInfo, err error) {
	err = r.with(func(p *contract.Presale) error {
		info, err = p.GetUserInfo(addr)
		return err
	})
	return info, err
}

func (r *sharedReader) GetUserDeposits(addr sdk.Address) (deposit uint64, err error) {
	err = r.with(func(p *contract.Presale) error {
		deposit, err = p.GetUserDeposits(addr)
		return err
	})
	return deposit, err
}

func (r *sharedReader) IsWhitelisted(addr sdk.Address) (listed bool, err error) {
	err = r.with(func(p *contract.Presale) error {
		listed, err = p.IsWhitelisted(addr)
		return err
	})
	return listed, err
}
