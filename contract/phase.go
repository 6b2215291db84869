package contract

// PhaseAt classifies a block height against the sale windows. The finalized flag is not part
// of it; callers check that on top.
func PhaseAt(cfg *Config, block uint64) Phase {
	switch {
	case block < cfg.StartBlock:
		return PhaseNotStarted
	case block < cfg.WhitelistEndBlock:
		return PhaseWhitelist
	case block < cfg.EndBlock:
		return PhasePublic
	default:
		return PhaseEnded
	}
}

// requireBuyWindow gates deposits: open phase and not finalized.
func requireBuyWindow(cfg *Config, st *PresaleState, block uint64) (Phase, error) {
	if st.Finalized {
		return PhaseEnded, reject(ErrSaleEnded, "sale already finalized")
	}
	phase := PhaseAt(cfg, block)
	switch phase {
	case PhaseNotStarted:
		return phase, reject(ErrSaleNotActive, "sale opens at block %d, now %d", cfg.StartBlock, block)
	case PhaseEnded:
		return phase, reject(ErrSaleEnded, "sale closed at block %d, now %d", cfg.EndBlock, block)
	}
	return phase, nil
}

// finalizeEligible is true once the softcap is met or the deadline has passed.
func finalizeEligible(cfg *Config, st *PresaleState, block uint64) bool {
	return st.TotalRaised >= cfg.Softcap || block >= cfg.EndBlock
}
