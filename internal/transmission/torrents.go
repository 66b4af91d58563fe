package transmission

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"transmissionbot/internal/domain"
	"transmissionbot/internal/metrics"
)

// torrentFields is the full field set requested on every torrent-get. The
// names follow the Transmission RPC spec.
var torrentFields = []string{
	"id", "name", "status", "percentDone", "downloadedEver", "totalSize",
	"rateDownload", "rateUpload", "peersConnected", "peersGettingFromUs",
	"peersSendingToUs",
}

type rpcTorrent struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Status             int64   `json:"status"`
	PercentDone        float64 `json:"percentDone"`
	DownloadedEver     int64   `json:"downloadedEver"`
	TotalSize          int64   `json:"totalSize"`
	RateDownload       int64   `json:"rateDownload"`
	RateUpload         int64   `json:"rateUpload"`
	PeersConnected     int64   `json:"peersConnected"`
	PeersGettingFromUs int64   `json:"peersGettingFromUs"`
	PeersSendingToUs   int64   `json:"peersSendingToUs"`
}

func (rt rpcTorrent) domain() domain.Torrent {
	return domain.Torrent{
		ID:                 rt.ID,
		Name:               rt.Name,
		Status:             domain.StatusFromCode(rt.Status),
		PercentDone:        rt.PercentDone,
		DownloadedEver:     rt.DownloadedEver,
		TotalSize:          rt.TotalSize,
		RateDownload:       rt.RateDownload,
		RateUpload:         rt.RateUpload,
		PeersConnected:     rt.PeersConnected,
		PeersGettingFromUs: rt.PeersGettingFromUs,
		PeersSendingToUs:   rt.PeersSendingToUs,
	}
}

type addedTorrent struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c *Client) fetch(ctx context.Context, ids []int64) ([]domain.Torrent, error) {
	args := map[string]any{"fields": torrentFields}
	if len(ids) > 0 {
		args["ids"] = ids
	}
	var out struct {
		Torrents []rpcTorrent `json:"torrents"`
	}
	if err := c.call(ctx, "torrent-get", args, &out); err != nil {
		return nil, err
	}
	torrents := make([]domain.Torrent, 0, len(out.Torrents))
	for _, rt := range out.Torrents {
		torrents = append(torrents, rt.domain())
	}
	return torrents, nil
}

// All returns every torrent the daemon knows, in daemon order.
func (c *Client) All(ctx context.Context) ([]domain.Torrent, error) {
	torrents, err := c.fetch(ctx, nil)
	if err != nil {
		return nil, wrapOp("list torrents", err)
	}
	return torrents, nil
}

// Active returns the subset of All whose status is in the active set
// (transferring, queued or checking), in daemon order.
func (c *Client) Active(ctx context.Context) ([]domain.Torrent, error) {
	torrents, err := c.fetch(ctx, nil)
	if err != nil {
		return nil, wrapOp("list active torrents", err)
	}
	active := make([]domain.Torrent, 0, len(torrents))
	for _, t := range torrents {
		if t.Status.Active() {
			active = append(active, t)
		}
	}
	return active, nil
}

// Add submits raw .torrent metadata to the daemon with an immediate start and
// returns a fresh snapshot of the resulting torrent. Malformed metadata is
// rejected by the daemon and surfaces as a *DaemonError.
func (c *Client) Add(ctx context.Context, raw []byte) (domain.Torrent, error) {
	args := map[string]any{
		"metainfo": base64.StdEncoding.EncodeToString(raw),
		"paused":   false,
	}
	var out struct {
		Added     *addedTorrent `json:"torrent-added"`
		Duplicate *addedTorrent `json:"torrent-duplicate"`
	}
	if err := c.call(ctx, "torrent-add", args, &out); err != nil {
		return domain.Torrent{}, wrapOp("add torrent", err)
	}
	added := out.Added
	if added == nil {
		added = out.Duplicate
	}
	if added == nil {
		return domain.Torrent{}, &OpError{Op: "add torrent", Err: errors.New("daemon returned no torrent")}
	}
	c.logger.Info("torrent added", slog.Int64("id", added.ID), slog.String("name", added.Name))
	metrics.TorrentsAddedTotal.Inc()

	torrents, err := c.fetch(ctx, []int64{added.ID})
	if err != nil || len(torrents) == 0 {
		// The add went through; fall back to what the add response gave us.
		return domain.Torrent{ID: added.ID, Name: added.Name, Status: domain.StatusDownloading}, nil
	}
	return torrents[0], nil
}

// PauseAll stops every torrent that is not already stopped with a single bulk
// torrent-stop and returns how many were selected. Nothing to stop means no
// RPC at all.
func (c *Client) PauseAll(ctx context.Context) (int, error) {
	torrents, err := c.fetch(ctx, nil)
	if err != nil {
		return 0, wrapOp("pause all", err)
	}
	ids := make([]int64, 0, len(torrents))
	for _, t := range torrents {
		if t.Status != domain.StatusStopped {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := c.call(ctx, "torrent-stop", map[string]any{"ids": ids}, nil); err != nil {
		return 0, wrapOp("pause all", err)
	}
	c.logger.Info("torrents stopped", slog.Int("count", len(ids)))
	return len(ids), nil
}

// ResumeAll starts every stopped torrent that is not fully downloaded with a
// single bulk torrent-start and returns how many were selected. Finished
// stopped torrents stay stopped: resuming them would be a no-op for the user.
func (c *Client) ResumeAll(ctx context.Context) (int, error) {
	torrents, err := c.fetch(ctx, nil)
	if err != nil {
		return 0, wrapOp("resume all", err)
	}
	ids := make([]int64, 0, len(torrents))
	for _, t := range torrents {
		if t.Status == domain.StatusStopped && !t.Done() {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := c.call(ctx, "torrent-start", map[string]any{"ids": ids}, nil); err != nil {
		return 0, wrapOp("resume all", err)
	}
	c.logger.Info("torrents resumed", slog.Int("count", len(ids)))
	return len(ids), nil
}
