package contract_test

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_presale/contract"
	"okinoko_presale/sdk"
)

var errDiskFull = errors.New("disk full")

// flakyState fails every write once armed.
type flakyState struct {
	*sdk.MockState
	fail bool
}

func (f *flakyState) Write(b *sdk.Batch) error {
	if f.fail {
		return errDiskFull
	}
	return f.MockState.Write(b)
}

// stuckTokens refuses payouts but lets everything else through.
type stuckTokens struct {
	contract.TokenLedger
}

func (stuckTokens) TransferOut(sdk.Asset, sdk.Address, uint64) error {
	return errors.New("token ledger paused")
}

func reopen(t *testing.T, pt *presaleTest, mutate func(h *contract.Host)) *contract.Presale {
	t.Helper()
	h := pt.host
	mutate(&h)
	p, err := contract.Open(h)
	require.NoError(t, err)
	return p
}

func TestBuyCommitFailureCompensatesLedger(t *testing.T) {
	pt := setupPresale(t).at(21)
	flaky := &flakyState{MockState: pt.state}
	p := reopen(t, pt, func(h *contract.Host) { h.State = flaky })

	flaky.fail = true
	err := p.Buy(wallet1, pt.cfg.MinBuy)
	require.ErrorIs(t, err, errDiskFull)

	assert.Equal(t, walletFunds, pt.balance(sdk.AssetNative, wallet1))
	assert.Equal(t, uint64(0), pt.balance(sdk.AssetNative, selfAddress))
	assert.Equal(t, uint64(0), pt.user(wallet1).Deposit)
	assert.Contains(t, pt.messages(logrus.TraceLevel), "state commit failed")

	flaky.fail = false
	require.NoError(t, p.Buy(wallet1, pt.cfg.MinBuy))
	assert.Equal(t, pt.cfg.MinBuy, pt.user(wallet1).Deposit)
}

func TestFinalizeCommitFailureReturnsTokens(t *testing.T) {
	pt := setupPresale(t)
	pt.fillSoftcap()
	flaky := &flakyState{MockState: pt.state, fail: true}
	p := reopen(t, pt, func(h *contract.Host) { h.State = flaky })

	require.ErrorIs(t, p.Finalize(ownerAddress, saleToken), errDiskFull)
	assert.Equal(t, pt.cfg.TokenToSell, pt.balance(saleToken, ownerAddress))
	assert.Equal(t, uint64(0), pt.balance(saleToken, selfAddress))
	assert.False(t, pt.info().Finalized)
}

func TestClaimLedgerFailureKeepsClaimed(t *testing.T) {
	pt := distributing(t)
	p := reopen(t, pt, func(h *contract.Host) { h.Tokens = stuckTokens{h.Tokens} })
	before := pt.state.Snapshot()

	err := p.Claim(wallet1, saleToken)
	require.Error(t, err)
	assert.Equal(t, 0, contract.CodeOf(err))
	assert.Equal(t, before, pt.state.Snapshot())
	assert.Equal(t, uint64(0), pt.user(wallet1).Claimed)
}

func TestRefundCommitFailureRestoresCustody(t *testing.T) {
	pt := failedSale(t)
	flaky := &flakyState{MockState: pt.state, fail: true}
	p := reopen(t, pt, func(h *contract.Host) { h.State = flaky })

	require.ErrorIs(t, p.ClaimRefund(wallet1), errDiskFull)
	assert.Equal(t, 150*sdk.One, pt.balance(sdk.AssetNative, selfAddress))
	assert.Equal(t, 100*sdk.One, pt.user(wallet1).Deposit)
}
