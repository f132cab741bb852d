package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBatchAggregate(t *testing.T) {
	batch := &Batch{Entries: []*QueueEntry{
		{
			ID:          "e1",
			Purpose:     PurposeInvest,
			Tier1Amount: decimal.NewFromInt(100),
			Tier2Amount: decimal.NewFromInt(50),
		},
		{
			ID:          "e2",
			Purpose:     PurposeInvest,
			Tier3Amount: decimal.NewFromInt(25),
		},
		{
			ID:          "e3",
			Purpose:     PurposeWithdraw,
			Tier1Amount: decimal.NewFromInt(30),
			Tier3Amount: decimal.NewFromInt(40),
		},
	}}

	delta := batch.Aggregate()

	if !delta.Tier1.Equal(decimal.NewFromInt(70)) {
		t.Errorf("tier1: expected 70, got %s", delta.Tier1)
	}
	if !delta.Tier2.Equal(decimal.NewFromInt(50)) {
		t.Errorf("tier2: expected 50, got %s", delta.Tier2)
	}
	if !delta.Tier3.Equal(decimal.NewFromInt(-15)) {
		t.Errorf("tier3: expected -15, got %s", delta.Tier3)
	}
}

func TestBatchEntryIDs(t *testing.T) {
	batch := &Batch{Entries: []*QueueEntry{{ID: "a"}, {ID: "b"}}}

	ids := batch.EntryIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
