package domain

import "github.com/shopspring/decimal"

// Batch is a fixed-size group of claimed queue entries netted into one
// aggregate valuation call. It is ephemeral and never persisted.
type Batch struct {
	Entries []*QueueEntry
}

// EntryIDs returns the identifiers of all entries in the batch.
func (b *Batch) EntryIDs() []string {
	ids := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		ids[i] = e.ID
	}

	return ids
}

// AggregateDelta holds the signed per-tier totals of a batch. Investments
// contribute positively, withdrawals negatively.
type AggregateDelta struct {
	Tier1 decimal.Decimal
	Tier2 decimal.Decimal
	Tier3 decimal.Decimal
}

// Aggregate computes the batch's signed per-tier delta.
func (b *Batch) Aggregate() AggregateDelta {
	var delta AggregateDelta
	for _, e := range b.Entries {
		switch e.Purpose {
		case PurposeInvest:
			delta.Tier1 = delta.Tier1.Add(e.Tier1Amount)
			delta.Tier2 = delta.Tier2.Add(e.Tier2Amount)
			delta.Tier3 = delta.Tier3.Add(e.Tier3Amount)
		case PurposeWithdraw:
			delta.Tier1 = delta.Tier1.Sub(e.Tier1Amount)
			delta.Tier2 = delta.Tier2.Sub(e.Tier2Amount)
			delta.Tier3 = delta.Tier3.Sub(e.Tier3Amount)
		}
	}

	return delta
}
