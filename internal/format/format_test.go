package format

import (
	"strings"
	"testing"

	"transmissionbot/internal/domain"
)

func TestSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1 << 20, "1.00 MB"},
		{1 << 30, "1.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1.00 PB"},
		{3 << 50, "3.00 PB"},
		// PB is the last unit: anything bigger stays in PB.
		{1 << 60, "1024.00 PB"},
	}
	for _, tt := range tests {
		if got := Size(tt.in); got != tt.want {
			t.Errorf("Size(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpeedMatchesSize(t *testing.T) {
	for _, v := range []int64{0, 1, 512, 1536, 1 << 20, 1 << 40, 1 << 55} {
		want := Size(v) + "/s"
		if got := Speed(v); got != want {
			t.Errorf("Speed(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status domain.Status
		want   string
	}{
		{domain.StatusStopped, "⏸ Остановлен"},
		{domain.StatusCheckWait, "⏳ Ожидает проверки"},
		{domain.StatusChecking, "🔍 Проверяется"},
		{domain.StatusDownloadWait, "⏳ Ожидает загрузки"},
		{domain.StatusDownloading, "⬇️ Загружается"},
		{domain.StatusSeedWait, "⏳ Ожидает раздачи"},
		{domain.StatusSeeding, "⬆️ Раздается"},
		{domain.Status("unknown:17"), "❓ unknown:17"},
	}
	for _, tt := range tests {
		if got := StatusLabel(tt.status); got != tt.want {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestItem(t *testing.T) {
	torrent := domain.Torrent{
		ID:                 1,
		Name:               "ubuntu.iso",
		Status:             domain.StatusDownloading,
		PercentDone:        0.505,
		DownloadedEver:     1536,
		TotalSize:          3072,
		RateDownload:       1024,
		RateUpload:         512,
		PeersConnected:     10,
		PeersGettingFromUs: 2,
		PeersSendingToUs:   3,
	}
	want := "📦 **ubuntu.iso**\n" +
		"Статус: ⬇️ Загружается\n" +
		"Прогресс: 50.5%\n" +
		"Загружено: 1.50 KB / 3.00 KB\n" +
		"Скорость загрузки: 1.00 KB/s\n" +
		"Скорость отдачи: 512.00 B/s\n" +
		"Пиры: 10 (отдаем: 2, получаем: 3)\n"
	if got := Item(torrent); got != want {
		t.Errorf("Item() = %q, want %q", got, want)
	}
}

func TestItemUnknownStatusFallback(t *testing.T) {
	torrent := domain.Torrent{Name: "x", Status: domain.Status("unknown:42")}
	got := Item(torrent)
	if want := "Статус: ❓ unknown:42\n"; !strings.Contains(got, want) {
		t.Errorf("Item() = %q, missing %q", got, want)
	}
}
