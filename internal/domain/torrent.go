package domain

// Torrent is one torrent's state as reported by the daemon. Instances are a
// fresh snapshot per RPC call; nothing in this process caches them.
type Torrent struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Status             Status  `json:"status"`
	PercentDone        float64 `json:"percentDone"`
	DownloadedEver     int64   `json:"downloadedEver"`
	TotalSize          int64   `json:"totalSize"`
	RateDownload       int64   `json:"rateDownload"`
	RateUpload         int64   `json:"rateUpload"`
	PeersConnected     int64   `json:"peersConnected"`
	PeersGettingFromUs int64   `json:"peersGettingFromUs"`
	PeersSendingToUs   int64   `json:"peersSendingToUs"`
}

// Done reports whether the torrent has all its data.
func (t Torrent) Done() bool {
	return t.PercentDone >= 1.0
}
