package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_presale/contract"
	"okinoko_presale/sdk"
)

// failedSale raises 150 against a 500 softcap and finalizes after the deadline.
func failedSale(t *testing.T) *presaleTest {
	pt := setupPresale(t).at(21)
	pt.mustBuy(wallet1, 100*sdk.One)
	pt.mustBuy(wallet2, 50*sdk.One)
	pt.at(30)
	require.NoError(t, pt.presale.Finalize(ownerAddress, saleToken))
	return pt
}

func TestRefundRestoresDeposit(t *testing.T) {
	pt := failedSale(t)
	require.NoError(t, pt.presale.ClaimRefund(wallet1))
	assert.Equal(t, walletFunds, pt.balance(sdk.AssetNative, wallet1))

	u := pt.user(wallet1)
	assert.Equal(t, uint64(0), u.Deposit)
	assert.Equal(t, 100*sdk.One, u.Refunded)
	assert.Equal(t, 50*sdk.One, pt.balance(sdk.AssetNative, selfAddress))

	require.NoError(t, pt.presale.ClaimRefund(wallet2))
	assert.Equal(t, uint64(0), pt.balance(sdk.AssetNative, selfAddress))
	// raised total stays as the historical figure
	assert.Equal(t, 150*sdk.One, pt.info().TotalRaised)
}

func TestRefundTwiceIsRejected(t *testing.T) {
	pt := failedSale(t)
	require.NoError(t, pt.presale.ClaimRefund(wallet1))
	err := pt.presale.ClaimRefund(wallet1)
	assert.ErrorIs(t, err, contract.ErrNothingToRefund)
	assert.Equal(t, walletFunds, pt.balance(sdk.AssetNative, wallet1))
}

func TestRefundStranger(t *testing.T) {
	pt := failedSale(t)
	assert.ErrorIs(t, pt.presale.ClaimRefund(outsider), contract.ErrNotParticipant)
}

func TestRefundOnlyOnFailureBranch(t *testing.T) {
	pt := setupPresale(t).at(21)
	pt.mustBuy(wallet1, 100*sdk.One)
	assert.ErrorIs(t, pt.presale.ClaimRefund(wallet1), contract.ErrFailureBranchOnly)

	// deadline passed but nobody finalized yet
	pt.at(35)
	assert.ErrorIs(t, pt.presale.ClaimRefund(wallet1), contract.ErrFailureBranchOnly)

	ok := distributing(t)
	err := ok.presale.ClaimRefund(wallet1)
	assert.ErrorIs(t, err, contract.ErrFailureBranchOnly)
	assert.Equal(t, 7005, contract.CodeOf(err))
}

// =============================================================================
// Token Recovery
// =============================================================================

func TestWithdrawTokensWhenFail(t *testing.T) {
	pt := setupPresale(t)
	require.NoError(t, pt.presale.FundTokens(ownerAddress, saleToken, pt.cfg.TokenToSell))
	pt.at(21)
	pt.mustBuy(wallet1, 100*sdk.One)
	pt.at(30)
	require.NoError(t, pt.presale.Finalize(ownerAddress, saleToken))

	assert.ErrorIs(t, pt.presale.WithdrawTokensWhenFail(wallet1, saleToken), contract.ErrNotAuthorized)
	assert.ErrorIs(t, pt.presale.WithdrawTokensWhenFail(ownerAddress, "other"), contract.ErrInvalidToken)

	require.NoError(t, pt.presale.WithdrawTokensWhenFail(ownerAddress, saleToken))
	assert.Equal(t, pt.cfg.TokenToSell, pt.balance(saleToken, ownerAddress))
	assert.Equal(t, uint64(0), pt.info().TokenBalance)

	assert.ErrorIs(t, pt.presale.WithdrawTokensWhenFail(ownerAddress, saleToken), contract.ErrNothingToWithdraw)
}

func TestWithdrawTokensRejectedAfterSuccess(t *testing.T) {
	pt := distributing(t)
	err := pt.presale.WithdrawTokensWhenFail(ownerAddress, saleToken)
	assert.ErrorIs(t, err, contract.ErrFailureBranchOnly)
	assert.Equal(t, pt.cfg.TokenToSell, pt.balance(saleToken, selfAddress))
}

func TestWithdrawTokensRejectedBeforeFinalize(t *testing.T) {
	pt := setupPresale(t)
	require.NoError(t, pt.presale.FundTokens(ownerAddress, saleToken, 10))
	assert.ErrorIs(t, pt.presale.WithdrawTokensWhenFail(ownerAddress, saleToken), contract.ErrFailureBranchOnly)
}
