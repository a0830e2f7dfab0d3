package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate5(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid-bucket floors down",
			time.Date(2025, 3, 14, 12, 7, 33, 123456000, time.UTC),
			time.Date(2025, 3, 14, 12, 5, 0, 0, time.UTC),
		},
		{
			"already on boundary",
			time.Date(2025, 3, 14, 12, 10, 0, 0, time.UTC),
			time.Date(2025, 3, 14, 12, 10, 0, 0, time.UTC),
		},
		{
			"boundary with seconds zeroes them",
			time.Date(2025, 3, 14, 12, 10, 59, 0, time.UTC),
			time.Date(2025, 3, 14, 12, 10, 0, 0, time.UTC),
		},
		{
			"top of hour",
			time.Date(2025, 3, 14, 12, 4, 59, 0, time.UTC),
			time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		},
		{
			"end of hour",
			time.Date(2025, 3, 14, 12, 59, 1, 0, time.UTC),
			time.Date(2025, 3, 14, 12, 55, 0, 0, time.UTC),
		},
		{
			"non-UTC input normalizes first",
			time.Date(2025, 3, 14, 17, 7, 33, 0, time.FixedZone("UTC+5", 5*3600)),
			time.Date(2025, 3, 14, 12, 5, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate5(tt.in)
			assert.True(t, got.Equal(tt.want), "Truncate5(%v) = %v, want %v", tt.in, got, tt.want)
			assert.Equal(t, 0, got.Minute()%5)
		})
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 3, 14, 12, 7, 33, 0, time.UTC)
	assert.Equal(t, "ACQ__2025-03-14_1205.csv", Filename(DatasetACQ, ts))
	assert.Equal(t, "Campaign_Interactions__2025-03-14_1205.csv", Filename(DatasetCampaignInteractions, ts))
}

func TestFilename_MinuteAlwaysMultipleOfFive(t *testing.T) {
	base := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	for m := 0; m < 60; m++ {
		name := Filename(DatasetDials, base.Add(time.Duration(m)*time.Minute))
		minute := name[len(name)-6 : len(name)-4]
		switch minute[1] {
		case '0', '5':
		default:
			t.Fatalf("filename %s encodes minute %s, not a multiple of 5", name, minute)
		}
	}
}
