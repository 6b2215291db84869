package contract

import (
	"fmt"
	"strings"

	"okinoko_presale/sdk"
)

// emitInitEvent records the deployment so indexers know the sale figures up front.
func emitInitEvent(tx *txn, cfg *Config) {
	tx.emit(fmt.Sprintf(
		"pi|by:%s|tk:%s|sell:%d|sc:%d|hc:%d|blocks:%d-%d-%d",
		cfg.Owner,
		cfg.Token,
		cfg.TokenToSell,
		cfg.Softcap,
		cfg.Hardcap,
		cfg.StartBlock,
		cfg.WhitelistEndBlock,
		cfg.EndBlock,
	))
}

// emitBuyEvent carries the running totals so the deposit history can be replayed from logs.
func emitBuyEvent(tx *txn, by sdk.Address, amount, deposit, total uint64) {
	tx.emit(fmt.Sprintf(
		"b|by:%s|am:%d|dep:%d|tot:%d",
		by,
		amount,
		deposit,
		total,
	))
}

// emitWhitelistEvent logs "wa" for additions and "wr" for removals, addresses comma joined.
func emitWhitelistEvent(tx *txn, added bool, by sdk.Address, addrs []sdk.Address) {
	tag := "wr"
	if added {
		tag = "wa"
	}
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	tx.emit(fmt.Sprintf(
		"%s|by:%s|n:%d|ad:%s",
		tag,
		by,
		len(addrs),
		strings.Join(parts, ","),
	))
}

func emitFinalizeEvent(tx *txn, by sdk.Address, outcome Outcome, total, allocated uint64) {
	tx.emit(fmt.Sprintf(
		"f|by:%s|o:%s|tot:%d|alloc:%d|h:%d",
		by,
		outcome,
		total,
		allocated,
		tx.block(),
	))
}

func emitClaimEvent(tx *txn, by sdk.Address, amount, claimed, pct uint64) {
	tx.emit(fmt.Sprintf(
		"c|by:%s|am:%d|cl:%d|pct:%d",
		by,
		amount,
		claimed,
		pct,
	))
}

func emitRefundEvent(tx *txn, to sdk.Address, amount uint64) {
	tx.emit(fmt.Sprintf("r|to:%s|am:%d", to, amount))
}

// emitTokensMovedEvent covers the admin side: "ft" for funding custody, "wt" for withdrawing it.
func emitTokensMovedEvent(tx *txn, funded bool, who sdk.Address, token sdk.Asset, amount uint64) {
	tag := "wt"
	if funded {
		tag = "ft"
	}
	tx.emit(fmt.Sprintf(
		"%s|by:%s|am:%d|tk:%s",
		tag,
		who,
		amount,
		token,
	))
}
