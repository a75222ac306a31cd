package services

import (
	"testing"
	"time"
)

func TestClampTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{name: "zero uses default", ttl: 0, want: DefaultCacheTTL},
		{name: "too short", ttl: time.Second, want: MinCacheTTL},
		{name: "too long", ttl: 48 * time.Hour, want: MaxCacheTTL},
		{name: "in range", ttl: 30 * time.Minute, want: 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampTTL(tt.ttl); got != tt.want {
				t.Errorf("clampTTL(%v) = %v, want %v", tt.ttl, got, tt.want)
			}
		})
	}
}
