package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePurpose(t *testing.T) {
	tests := []struct {
		input   string
		want    Purpose
		wantErr bool
	}{
		{"INVEST", PurposeInvest, false},
		{"WITHDRAW", PurposeWithdraw, false},
		{"invest", "", true},
		{"TRANSFER", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePurpose(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPurpose) {
					t.Fatalf("expected ErrInvalidPurpose, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestQueueEntryValidate(t *testing.T) {
	valid := func() *QueueEntry {
		return &QueueEntry{
			ID:          "e1",
			AccountID:   "acct-1",
			Tier1Amount: decimal.NewFromInt(100),
			Purpose:     PurposeInvest,
			Status:      QueueStatusPending,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*QueueEntry)
		wantErr error
	}{
		{
			name:   "valid entry",
			mutate: func(e *QueueEntry) {},
		},
		{
			name:    "missing account",
			mutate:  func(e *QueueEntry) { e.AccountID = "" },
			wantErr: ErrMissingAccountID,
		},
		{
			name:    "invalid purpose",
			mutate:  func(e *QueueEntry) { e.Purpose = "SPEND" },
			wantErr: ErrInvalidPurpose,
		},
		{
			name:    "negative amount",
			mutate:  func(e *QueueEntry) { e.Tier2Amount = decimal.NewFromInt(-1) },
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "all amounts zero",
			mutate:  func(e *QueueEntry) { e.Tier1Amount = decimal.Zero },
			wantErr: ErrEmptyRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)

			err := e.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestQueueEntryTotalAmount(t *testing.T) {
	e := &QueueEntry{
		Tier1Amount: decimal.NewFromInt(10),
		Tier2Amount: decimal.NewFromInt(20),
		Tier3Amount: decimal.NewFromFloat(0.5),
	}

	want := decimal.NewFromFloat(30.5)
	if !e.TotalAmount().Equal(want) {
		t.Fatalf("expected %s, got %s", want, e.TotalAmount())
	}
}

func TestQueueStatusTerminal(t *testing.T) {
	if QueueStatusPending.Terminal() || QueueStatusProcessing.Terminal() {
		t.Fatal("PENDING and PROCESSING must not be terminal")
	}
	if !QueueStatusDone.Terminal() || !QueueStatusFailed.Terminal() {
		t.Fatal("DONE and FAILED must be terminal")
	}
}
