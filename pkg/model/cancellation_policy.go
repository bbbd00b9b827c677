package model

// RefundTier maps a minimum lead time (hours before the appointment start)
// to the refund percentage it grants.
type RefundTier struct {
	HoursBefore   int `json:"hours_before" bson:"hours_before"`
	RefundPercent int `json:"refund_percent" bson:"refund_percent"`
}

// CancellationPolicy is an ordered, descending tier table. The current
// deployment uses a single global table from config, but it is modeled as
// data so it can become business-configurable without touching the engine.
type CancellationPolicy struct {
	Tiers []RefundTier `json:"tiers" bson:"tiers"`
}

// Normalized returns the tiers sorted by descending threshold with a
// guaranteed 0-hour terminal tier, so a scan always yields a result.
func (p CancellationPolicy) Normalized() []RefundTier {
	tiers := make([]RefundTier, len(p.Tiers))
	copy(tiers, p.Tiers)

	for i := 1; i < len(tiers); i++ {
		for j := i; j > 0 && tiers[j].HoursBefore > tiers[j-1].HoursBefore; j-- {
			tiers[j], tiers[j-1] = tiers[j-1], tiers[j]
		}
	}

	if len(tiers) == 0 || tiers[len(tiers)-1].HoursBefore != 0 {
		tiers = append(tiers, RefundTier{HoursBefore: 0, RefundPercent: 0})
	}
	return tiers
}
