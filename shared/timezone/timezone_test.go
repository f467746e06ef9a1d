package timezone_test

import (
	"roomboard/shared/timezone"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "empty falls back to UTC", zone: "", want: "UTC"},
		{name: "unknown falls back to UTC", zone: "Mars/Olympus_Mons", want: "UTC"},
		{name: "utc", zone: "UTC", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timezone.Load(tt.zone).String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if _, err := time.LoadLocation("Indian/Maldives"); err == nil {
		if got := timezone.Load("Indian/Maldives").String(); got != "Indian/Maldives" {
			t.Errorf("expected Indian/Maldives, got %s", got)
		}
	}
}

func TestNow(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	if now.Location() != timezone.GetLocation() {
		t.Errorf("expected Now() in %s, got %s", timezone.GetLocation(), now.Location())
	}
}
