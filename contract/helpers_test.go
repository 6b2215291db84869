package contract_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"okinoko_presale/contract"
	"okinoko_presale/sdk"
)

const (
	ownerAddress = sdk.Address("hive:deployer")
	selfAddress  = sdk.Address("contract:presale1")
	saleToken    = contract.DefaultToken
	walletFunds  = 1_000 * sdk.One
)

var (
	wallet1  = sdk.Address("hive:wallet1")
	wallet2  = sdk.Address("hive:wallet2")
	wallet3  = sdk.Address("hive:wallet3")
	wallet4  = sdk.Address("hive:wallet4")
	wallet5  = sdk.Address("hive:wallet5")
	outsider = sdk.Address("hive:outsider")
)

// presaleTest bundles a deployed sale with the host pieces tests poke at directly.
type presaleTest struct {
	t       *testing.T
	cfg     contract.Config
	state   *sdk.MockState
	books   *sdk.MockState
	ledger  *sdk.Ledger
	clock   *sdk.ManualClock
	hook    *logtest.Hook
	host    contract.Host
	presale *contract.Presale
}

// setupPresale deploys the reference sale at block 0, funds every wallet with native units
// and gives the owner the full sale supply.
func setupPresale(t *testing.T, tweaks ...func(*contract.Config)) *presaleTest {
	t.Helper()
	cfg := contract.DefaultConfig(ownerAddress)
	for _, tw := range tweaks {
		tw(&cfg)
	}
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	books := sdk.NewMockState()
	ledger := sdk.NewLedger(books)
	for _, w := range []sdk.Address{wallet1, wallet2, wallet3, wallet4, wallet5, outsider, ownerAddress} {
		require.NoError(t, ledger.Mint(sdk.AssetNative, w, walletFunds))
	}
	require.NoError(t, ledger.Mint(cfg.Token, ownerAddress, cfg.TokenToSell))

	pt := &presaleTest{
		t:      t,
		cfg:    cfg,
		state:  sdk.NewMockState(),
		books:  books,
		ledger: ledger,
		clock:  sdk.NewManualClock(0),
		hook:   hook,
	}
	pt.host = contract.Host{
		State:  pt.state,
		Value:  sdk.ValueView{Ledger: ledger, Custody: selfAddress},
		Tokens: sdk.TokenView{Ledger: ledger, Custody: selfAddress},
		Clock:  pt.clock,
		Logger: logger,
		Self:   selfAddress,
	}
	p, err := contract.Deploy(pt.host, cfg)
	require.NoError(t, err)
	pt.presale = p
	return pt
}

// at moves the chain to an absolute height.
func (pt *presaleTest) at(block uint64) *presaleTest {
	pt.t.Helper()
	require.NoError(pt.t, pt.clock.Set(block))
	return pt
}

func (pt *presaleTest) mine(n uint64) uint64 {
	return pt.clock.Advance(n)
}

func (pt *presaleTest) whitelist(addrs ...sdk.Address) {
	pt.t.Helper()
	_, err := pt.presale.AddAddressesToWhitelist(ownerAddress, addrs)
	require.NoError(pt.t, err)
}

// mustBuy buys and fails the test on rejection.
func (pt *presaleTest) mustBuy(addr sdk.Address, amount uint64) {
	pt.t.Helper()
	require.NoError(pt.t, pt.presale.Buy(addr, amount))
}

func (pt *presaleTest) balance(asset sdk.Asset, addr sdk.Address) uint64 {
	pt.t.Helper()
	b, err := pt.ledger.Balance(asset, addr)
	require.NoError(pt.t, err)
	return b
}

func (pt *presaleTest) info() contract.PresaleInfo {
	pt.t.Helper()
	info, err := pt.presale.GetPresaleInfo()
	require.NoError(pt.t, err)
	return info
}

func (pt *presaleTest) user(addr sdk.Address) contract.UserInfo {
	pt.t.Helper()
	info, err := pt.presale.GetUserInfo(addr)
	require.NoError(pt.t, err)
	return info
}

// fillSoftcap buys exactly the softcap in the public phase with five full deposits.
func (pt *presaleTest) fillSoftcap() {
	pt.t.Helper()
	pt.at(pt.cfg.WhitelistEndBlock)
	for _, w := range []sdk.Address{wallet1, wallet2, wallet3, wallet4, wallet5} {
		pt.mustBuy(w, pt.cfg.MaxBuy)
	}
	require.Equal(pt.t, pt.cfg.Softcap, pt.info().TotalRaised)
}

// messages returns every logged line at or above level.
func (pt *presaleTest) messages(level logrus.Level) []string {
	var out []string
	for _, e := range pt.hook.AllEntries() {
		if e.Level <= level {
			out = append(out, e.Message)
		}
	}
	return out
}
