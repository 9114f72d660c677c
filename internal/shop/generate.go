package shop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/youruser/shopmosaic/internal/catalog"
	"github.com/youruser/shopmosaic/internal/config"
	imagepkg "github.com/youruser/shopmosaic/internal/image"
)

// Shop is one catalog snapshot as supplied by the ingest side.
type Shop struct {
	Hash  string
	Date  string
	Items []catalog.Item
}

// Custom names a caller-keyed destination instead of the hash-based one.
type Custom struct {
	Key  string
	Name string
}

// Settings selects titles and which mosaics Generate produces.
type Settings struct {
	NormalTitle    string
	OGTitle        string
	ShowDateNormal bool
	ShowDateOG     bool
	OGEnabled      bool
	OGThreshold    int
	Custom         *Custom
}

// SettingsFromConfig maps the [shop] config section onto Settings.
func SettingsFromConfig(c config.Shop) Settings {
	return Settings{
		NormalTitle:    c.NormalTitle,
		OGTitle:        c.OGTitle,
		ShowDateNormal: c.ShowDateNormal,
		ShowDateOG:     c.ShowDateOG,
		OGEnabled:      c.OGEnabled,
		OGThreshold:    c.OGThreshold,
	}
}

// Summary holds the reports of a Generate call. OG is nil when rare items
// are disabled or none qualified.
type Summary struct {
	Normal Report        `json:"normal"`
	OG     *Report       `json:"og,omitempty"`
	Rarest *catalog.Item `json:"rarest,omitempty"`
}

func (s Settings) destination(hash string, og bool) imagepkg.Destination {
	if s.Custom != nil {
		return imagepkg.Destination{Kind: imagepkg.DestCustom, Key: s.Custom.Key, Name: s.Custom.Name, OG: og}
	}
	if og {
		return imagepkg.Destination{Kind: imagepkg.DestOG, Hash: hash}
	}
	return imagepkg.Destination{Kind: imagepkg.DestDefault, Hash: hash}
}

// Generate publishes the regular shop mosaic and, when enabled, the rare
// items mosaic for the same snapshot.
func (p *Pipeline) Generate(ctx context.Context, shop Shop, s Settings) (Summary, error) {
	var sum Summary
	items := catalog.Order(shop.Items)
	logger := p.logger.With(slog.String("hash", shop.Hash), slog.String("date", shop.Date))

	normal, err := p.Run(ctx, items, imagepkg.MosaicConfig{
		Title:       s.NormalTitle,
		ShowDate:    s.ShowDateNormal,
		Date:        shop.Date,
		Destination: s.destination(shop.Hash, false),
	})
	sum.Normal = normal
	if err != nil {
		return sum, fmt.Errorf("shop mosaic: %w", err)
	}

	if !s.OGEnabled {
		logger.Debug("rare items disabled")
		return sum, nil
	}
	rare := catalog.SelectOG(items, s.OGThreshold)
	if len(rare) == 0 {
		logger.Info("no rare items", slog.Int("threshold_days", s.OGThreshold))
		return sum, nil
	}
	if r, ok := catalog.Rarest(rare); ok {
		sum.Rarest = &r
		logger.Info("rarest item",
			slog.String("item_id", r.ID),
			slog.String("name", r.Name),
			slog.Int("days", r.Recency.Days),
			slog.Int("rare_items", len(rare)),
		)
	}

	og, err := p.Run(ctx, rare, imagepkg.MosaicConfig{
		Title:       s.OGTitle,
		ShowDate:    s.ShowDateOG,
		Date:        shop.Date,
		Destination: s.destination(shop.Hash, true),
	})
	sum.OG = &og
	if err != nil {
		return sum, fmt.Errorf("og mosaic: %w", err)
	}
	return sum, nil
}
