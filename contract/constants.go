package contract

import "okinoko_presale/sdk"

// -----------------------------------------------------------------------------
// Default Deployment
// -----------------------------------------------------------------------------

// Sale figures of the reference deployment, all in micro units.
const (
	DefaultTokenToSell       = 200_000_000 * sdk.One
	DefaultSoftcap           = 500 * sdk.One
	DefaultHardcap           = 2_000 * sdk.One
	DefaultMinBuy            = 10 * sdk.One
	DefaultMaxBuy            = 100 * sdk.One
	DefaultStartBlock        = 10
	DefaultWhitelistEndBlock = 20
	DefaultEndBlock          = 30
)

// DefaultToken is the ticker of the sale token in the reference deployment.
const DefaultToken sdk.Asset = "stxcity"

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// MaxWhitelistBatch caps how many identities one batch call may carry.
	MaxWhitelistBatch = 1000
	// MaxMilestones caps the vesting schedule length.
	MaxMilestones = 32
)

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kConfig stores the immutable Config blob.
	kConfig byte = 0x01
	// kPresaleState holds the aggregate counters and the finalize flags.
	kPresaleState byte = 0x02
	// kCallSeq counts committed calls; it feeds transaction ids.
	kCallSeq byte = 0x03
	// kParticipant houses encoded Participant records keyed by address.
	kParticipant byte = 0x04
	// kParticipantIndex maps insertion order to address so finalize can walk everyone.
	kParticipantIndex byte = 0x05
	// kWhitelist flags identities allowed to buy during the whitelist phase.
	kWhitelist byte = 0x06
)
