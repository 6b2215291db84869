package contract_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_presale/contract"
	"okinoko_presale/sdk"
)

func TestUnreadableHeightIsHostFault(t *testing.T) {
	pt := setupPresale(t)
	chain := sdk.NewMockState()
	require.NoError(t, sdk.SetObject(chain, "host:block", "garbage"))
	p := reopen(t, pt, func(h *contract.Host) { h.Clock = sdk.NewStateClock(chain) })

	err := p.Buy(wallet1, pt.cfg.MinBuy)
	require.Error(t, err)
	assert.NotErrorIs(t, err, contract.ErrSaleNotActive)
	assert.Zero(t, contract.CodeOf(err))
	assert.Equal(t, walletFunds, pt.balance(sdk.AssetNative, wallet1))

	_, err = p.GetPresaleInfo()
	require.Error(t, err)
}

func TestStateClockDrivesPhases(t *testing.T) {
	pt := setupPresale(t)
	chain := sdk.NewMockState()
	clock := sdk.NewStateClock(chain)
	p := reopen(t, pt, func(h *contract.Host) { h.Clock = clock })

	_, err := clock.Mine(contract.DefaultWhitelistEndBlock)
	require.NoError(t, err)
	require.NoError(t, p.Buy(wallet1, pt.cfg.MinBuy))

	info, err := p.GetPresaleInfo()
	require.NoError(t, err)
	assert.Equal(t, uint64(contract.DefaultWhitelistEndBlock), info.CurrentBlock)
	assert.Equal(t, contract.PhasePublic.String(), info.Phase)
}

// buyTxIDs collects the tx field of every logged buy event.
func buyTxIDs(pt *presaleTest) []string {
	var ids []string
	for _, e := range pt.hook.AllEntries() {
		if e.Level == logrus.InfoLevel && len(e.Message) > 2 && e.Message[:2] == "b|" {
			ids = append(ids, e.Data["tx"].(string))
		}
	}
	return ids
}

func TestTxIDsUniqueAcrossReopen(t *testing.T) {
	pt := setupPresale(t).at(contract.DefaultWhitelistEndBlock)

	// each reopen starts with a fresh in-memory nonce, like a new CLI process
	for i := 0; i < 3; i++ {
		p := reopen(t, pt, func(*contract.Host) {})
		require.NoError(t, p.Buy(wallet1, pt.cfg.MinBuy))
	}

	ids := buyTxIDs(pt)
	require.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])
	assert.NotEqual(t, ids[0], ids[2])
}
