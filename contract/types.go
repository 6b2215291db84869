package contract

import (
	"fmt"

	"okinoko_presale/sdk"
)

// Config is fixed at deployment. Amounts are micro units; blocks are host heights.
type Config struct {
	Owner             sdk.Address `json:"owner"`
	Token             sdk.Asset   `json:"token"`
	TokenToSell       uint64      `json:"tokenToSell"`
	Softcap           uint64      `json:"softcap"`
	Hardcap           uint64      `json:"hardcap"`
	MinBuy            uint64      `json:"minBuy"`
	MaxBuy            uint64      `json:"maxBuy"`
	StartBlock        uint64      `json:"startBlock"`
	WhitelistEndBlock uint64      `json:"whitelistEndBlock"`
	EndBlock          uint64      `json:"endBlock"`
	Schedule          Schedule    `json:"schedule"`
}

// DefaultConfig returns the reference deployment with the given administrator.
// Example payload: DefaultConfig("hive:deployer")
func DefaultConfig(owner sdk.Address) Config {
	return Config{
		Owner:             owner,
		Token:             DefaultToken,
		TokenToSell:       DefaultTokenToSell,
		Softcap:           DefaultSoftcap,
		Hardcap:           DefaultHardcap,
		MinBuy:            DefaultMinBuy,
		MaxBuy:            DefaultMaxBuy,
		StartBlock:        DefaultStartBlock,
		WhitelistEndBlock: DefaultWhitelistEndBlock,
		EndBlock:          DefaultEndBlock,
		Schedule:          DefaultSchedule(),
	}
}

// Validate checks the deployment invariants and returns the first violation wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case !c.Owner.IsValid():
		return reject(ErrInvalidConfig, "owner %q is not a valid address", c.Owner)
	case c.Token == "" || c.Token == sdk.AssetNative:
		return reject(ErrInvalidConfig, "sale token %q must be a non-native asset", c.Token)
	case c.TokenToSell == 0:
		return reject(ErrInvalidConfig, "tokenToSell must be positive")
	case c.Softcap == 0 || c.Softcap > c.Hardcap:
		return reject(ErrInvalidConfig, "need 0 < softcap (%d) <= hardcap (%d)", c.Softcap, c.Hardcap)
	case c.MinBuy == 0 || c.MinBuy > c.MaxBuy:
		return reject(ErrInvalidConfig, "need 0 < minBuy (%d) <= maxBuy (%d)", c.MinBuy, c.MaxBuy)
	case c.MaxBuy > c.Hardcap:
		return reject(ErrInvalidConfig, "maxBuy (%d) above hardcap (%d)", c.MaxBuy, c.Hardcap)
	case !(c.StartBlock < c.WhitelistEndBlock && c.WhitelistEndBlock < c.EndBlock):
		return reject(ErrInvalidConfig, "need startBlock (%d) < whitelistEndBlock (%d) < endBlock (%d)",
			c.StartBlock, c.WhitelistEndBlock, c.EndBlock)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("%w: vesting: %v", ErrInvalidConfig, err)
	}
	return nil
}

// PresaleState is the mutable singleton next to Config.
type PresaleState struct {
	TotalRaised         uint64
	ParticipantCount    uint64
	Finalized           bool
	DistributionHeight  uint64
	DistributionStarted bool
}

// Participant is created on the first deposit and never removed.
type Participant struct {
	Address    sdk.Address
	Deposit    uint64
	Allocation uint64
	Claimed    uint64
	Refunded   uint64
}

// Phase is the time window derived from the block height alone.
type Phase uint8

const (
	PhaseNotStarted Phase = 0
	PhaseWhitelist  Phase = 1
	PhasePublic     Phase = 2
	PhaseEnded      Phase = 3
)

// String prints the phase as lower-case text for events and queries.
// Example payload: PhasePublic.String()
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseWhitelist:
		return "whitelist"
	case PhasePublic:
		return "public"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome tells which branch finalize took.
type Outcome uint8

const (
	OutcomePending      Outcome = 0
	OutcomeDistributing Outcome = 1
	OutcomeFailed       Outcome = 2
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDistributing:
		return "distributing"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}

func outcomeOf(st *PresaleState) Outcome {
	switch {
	case !st.Finalized:
		return OutcomePending
	case st.DistributionStarted:
		return OutcomeDistributing
	default:
		return OutcomeFailed
	}
}

// PresaleInfo is the full read-only snapshot: configuration plus aggregate state.
type PresaleInfo struct {
	Config
	Initialized         bool   `json:"initialized"`
	CurrentBlock        uint64 `json:"currentBlock"`
	Phase               string `json:"phase"`
	Outcome             string `json:"outcome"`
	TotalRaised         uint64 `json:"totalRaised"`
	ParticipantCount    uint64 `json:"participantCount"`
	Finalized           bool   `json:"finalized"`
	DistributionHeight  uint64 `json:"distributionHeight"`
	DistributionStarted bool   `json:"distributionStarted"`
	VestedPercent       uint64 `json:"vestedPercent"`
	TokenBalance        uint64 `json:"tokenBalance"`
}

// UserInfo is the per-identity view.
type UserInfo struct {
	Address       sdk.Address `json:"address"`
	Deposit       uint64      `json:"deposit"`
	Allocation    uint64      `json:"allocation"`
	Claimed       uint64      `json:"claimed"`
	Claimable     uint64      `json:"claimable"`
	VestedPercent uint64      `json:"vestedPercent"`
	Whitelisted   bool        `json:"whitelisted"`
	Refunded      uint64      `json:"refunded"`
}
