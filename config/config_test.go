package config

import (
	"testing"
	"time"
)

func TestAddedCutoverTime(t *testing.T) {
	d := DatasetConfig{AddedCutover: "2023-01-01"}
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := d.AddedCutoverTime(); !got.Equal(want) {
		t.Fatalf("cutover: got %v, want %v", got, want)
	}

	d.AddedCutover = "not a date"
	if got := d.AddedCutoverTime(); !got.IsZero() {
		t.Fatalf("bad cutover must disable the restriction, got %v", got)
	}
}

func TestCarveOutAfterTime(t *testing.T) {
	c := CarveOutConfig{After: "2020-02-01"}
	want := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := c.AfterTime(); !got.Equal(want) {
		t.Fatalf("carve-out: got %v, want %v", got, want)
	}
}

func TestEffectiveSessionTTL(t *testing.T) {
	var nilCfg *AppConfig
	if got := nilCfg.EffectiveSessionTTL(); got != 3*time.Hour {
		t.Fatalf("nil config default: got %v", got)
	}

	cfg := &AppConfig{SessionTTL: time.Hour}
	if got := cfg.EffectiveSessionTTL(); got != time.Hour {
		t.Fatalf("configured ttl: got %v", got)
	}

	cfg.SessionTTL = 48 * time.Hour
	if got := cfg.EffectiveSessionTTL(); got != maxSessionTTL {
		t.Fatalf("ttl must be capped: got %v", got)
	}
}
