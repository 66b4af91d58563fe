package domain

import "testing"

func TestStatusFromCode(t *testing.T) {
	tests := []struct {
		code int64
		want Status
	}{
		{0, StatusStopped},
		{1, StatusCheckWait},
		{2, StatusChecking},
		{3, StatusDownloadWait},
		{4, StatusDownloading},
		{5, StatusSeedWait},
		{6, StatusSeeding},
		{7, Status("unknown:7")},
		{42, Status("unknown:42")},
	}
	for _, tt := range tests {
		if got := StatusFromCode(tt.code); got != tt.want {
			t.Errorf("StatusFromCode(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStatusActive(t *testing.T) {
	active := []Status{
		StatusDownloading, StatusSeeding, StatusChecking,
		StatusCheckWait, StatusDownloadWait, StatusSeedWait,
		StatusDownloadPending,
	}
	for _, s := range active {
		if !s.Active() {
			t.Errorf("%q should be active", s)
		}
	}
	for _, s := range []Status{StatusStopped, Status("unknown:9"), Status("")} {
		if s.Active() {
			t.Errorf("%q should not be active", s)
		}
	}
}

func TestTorrentDone(t *testing.T) {
	if (Torrent{PercentDone: 0.999}).Done() {
		t.Error("0.999 should not be done")
	}
	if !(Torrent{PercentDone: 1.0}).Done() {
		t.Error("1.0 should be done")
	}
}
