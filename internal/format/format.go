// Package format renders daemon state as the Russian-language text blocks the
// bot sends to Telegram. All functions are pure and never fail: values the
// mapping does not recognize degrade to a labeled fallback.
package format

import (
	"fmt"
	"strings"

	"transmissionbot/internal/domain"
)

var statusLabels = map[domain.Status]string{
	domain.StatusStopped:      "⏸ Остановлен",
	domain.StatusCheckWait:    "⏳ Ожидает проверки",
	domain.StatusChecking:     "🔍 Проверяется",
	domain.StatusDownloadWait: "⏳ Ожидает загрузки",
	domain.StatusDownloading:  "⬇️ Загружается",
	domain.StatusSeedWait:     "⏳ Ожидает раздачи",
	domain.StatusSeeding:      "⬆️ Раздается",
}

// Size renders a byte count scaled by 1024 through B..TB, falling through to
// PB, with two decimals and a space-separated unit.
func Size(n int64) string {
	v := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if v < 1024 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.2f PB", v)
}

// Speed renders a bytes-per-second rate.
func Speed(n int64) string {
	return Size(n) + "/s"
}

// StatusLabel returns the localized label for a status. Unmapped statuses keep
// the raw token behind a ❓ marker.
func StatusLabel(s domain.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "❓ " + string(s)
}

// Item renders one torrent as the fixed multi-line block used by /all and
// /active replies.
func Item(t domain.Torrent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 **%s**\n", t.Name)
	fmt.Fprintf(&b, "Статус: %s\n", StatusLabel(t.Status))
	fmt.Fprintf(&b, "Прогресс: %.1f%%\n", t.PercentDone*100)
	fmt.Fprintf(&b, "Загружено: %s / %s\n", Size(t.DownloadedEver), Size(t.TotalSize))
	fmt.Fprintf(&b, "Скорость загрузки: %s\n", Speed(t.RateDownload))
	fmt.Fprintf(&b, "Скорость отдачи: %s\n", Speed(t.RateUpload))
	fmt.Fprintf(&b, "Пиры: %d (отдаем: %d, получаем: %d)\n", t.PeersConnected, t.PeersGettingFromUs, t.PeersSendingToUs)
	return b.String()
}
