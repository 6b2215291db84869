package sdk

import (
	"encoding/hex"
	"strings"

	"lukechampine.com/blake3"
)

// Env is the per-call snapshot handed to the contract: who signed, at which block and under
// which transaction id. It is taken once at call entry and never refreshed mid-call.
type Env struct {
	TxId        string
	BlockHeight uint64
	Sender      Address
}

// NewTxID derives a deterministic transaction id from its parts (op name, sender, nonce...).
// Example payload: sdk.NewTxID("buy", "hive:alice", "12")
func NewTxID(parts ...string) string {
	sum := blake3.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}
