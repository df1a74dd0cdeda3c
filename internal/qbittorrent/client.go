// Package qbittorrent adapts the qBittorrent Web API v2 into the torrent
// records the reconciliation core consumes. Session handling and
// authentication live entirely behind this boundary.
package qbittorrent

import (
	"context"
	"fmt"

	qbt "github.com/autobrr/go-qbittorrent"

	"flotsam/internal/config"
	"flotsam/internal/reconcile"
)

// Client implements reconcile.TorrentSource against a live qBittorrent
// instance.
type Client struct {
	api *qbt.Client
}

// New builds a client from connection settings. No network traffic happens
// until Torrents is called.
func New(cfg config.Qbittorrent) *Client {
	return &Client{
		api: qbt.NewClient(qbt.Config{
			Host:     cfg.Host,
			Username: cfg.Username,
			Password: cfg.Password,
			Timeout:  cfg.TimeoutSeconds,
		}),
	}
}

// Torrents logs in and enumerates every managed torrent together with its
// content file list. Any failure, login included, is returned as-is; the
// caller treats it as the client being unavailable.
func (c *Client) Torrents(ctx context.Context) ([]reconcile.TorrentRecord, error) {
	if err := c.api.LoginCtx(ctx); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	torrents, err := c.api.GetTorrentsCtx(ctx, qbt.TorrentFilterOptions{})
	if err != nil {
		return nil, fmt.Errorf("list torrents: %w", err)
	}

	records := make([]reconcile.TorrentRecord, 0, len(torrents))
	for _, t := range torrents {
		files, err := c.api.GetFilesInformationCtx(ctx, t.Hash)
		if err != nil {
			return nil, fmt.Errorf("files for %q: %w", t.Name, err)
		}

		record := reconcile.TorrentRecord{
			Hash:     t.Hash,
			Name:     t.Name,
			Category: reconcile.NewCategory(t.Category),
			SavePath: t.SavePath,
		}
		if files != nil {
			record.Files = make([]reconcile.TorrentFile, 0, len(*files))
			for _, f := range *files {
				record.Files = append(record.Files, reconcile.TorrentFile{
					RelPath: f.Name,
					Size:    f.Size,
				})
			}
		}
		records = append(records, record)
	}

	return records, nil
}
