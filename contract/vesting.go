package contract

import (
	"errors"
	"fmt"
)

// Milestone releases Percent (cumulative) once Offset blocks passed since distribution.
type Milestone struct {
	Offset  uint64 `json:"offset"`
	Percent uint64 `json:"percent"`
}

// Schedule is an ordered milestone list shared by every participant.
type Schedule []Milestone

// DefaultSchedule unlocks 20% at distribution and 20% more at each following milestone.
func DefaultSchedule() Schedule {
	return Schedule{
		{Offset: 0, Percent: 20},
		{Offset: 500, Percent: 40},
		{Offset: 1000, Percent: 60},
		{Offset: 1500, Percent: 80},
		{Offset: 2100, Percent: 100},
	}
}

// Validate wants strictly increasing offsets, non-decreasing percents and a final 100.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return errors.New("schedule has no milestones")
	}
	if len(s) > MaxMilestones {
		return fmt.Errorf("schedule has %d milestones, max %d", len(s), MaxMilestones)
	}
	for i, m := range s {
		if m.Percent > 100 {
			return fmt.Errorf("milestone %d releases %d%%", i, m.Percent)
		}
		if i == 0 {
			continue
		}
		prev := s[i-1]
		if m.Offset <= prev.Offset {
			return fmt.Errorf("milestone %d offset %d not after %d", i, m.Offset, prev.Offset)
		}
		if m.Percent < prev.Percent {
			return fmt.Errorf("milestone %d percent %d below %d", i, m.Percent, prev.Percent)
		}
	}
	if last := s[len(s)-1]; last.Percent != 100 {
		return fmt.Errorf("final milestone releases %d%%, want 100", last.Percent)
	}
	return nil
}

// VestedPercent maps elapsed blocks since distribution to the cumulative percentage.
// Before the first offset the first milestone already applies.
// Example payload: DefaultSchedule().VestedPercent(750) == 40
func (s Schedule) VestedPercent(elapsed uint64) uint64 {
	if len(s) == 0 {
		return 0
	}
	pct := s[0].Percent
	for _, m := range s[1:] {
		if elapsed < m.Offset {
			break
		}
		pct = m.Percent
	}
	return pct
}

// vestedPercentAt is 0 until distribution started, then the schedule value at block.
func vestedPercentAt(cfg *Config, st *PresaleState, block uint64) uint64 {
	if !st.DistributionStarted {
		return 0
	}
	var elapsed uint64
	if block > st.DistributionHeight {
		elapsed = block - st.DistributionHeight
	}
	return cfg.Schedule.VestedPercent(elapsed)
}
