package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/youruser/shopmosaic/internal/catalog"
	"github.com/youruser/shopmosaic/internal/config"
	imagepkg "github.com/youruser/shopmosaic/internal/image"
	"github.com/youruser/shopmosaic/internal/logging"
	"github.com/youruser/shopmosaic/internal/shop"
)

type composeOptions struct {
	manifest  string
	hash      string
	date      string
	title     string
	ogTitle   string
	noDate    bool
	noOG      bool
	threshold int
	key       string
	name      string
}

func newComposeCommand(root *rootOptions) *cobra.Command {
	opts := &composeOptions{}
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose the shop mosaic (and rare items mosaic) from a CSV manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompose(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.manifest, "manifest", "m", "", "CSV manifest (id,name,price,last_seen,image,bundle)")
	f.StringVar(&opts.hash, "hash", "", "Shop hash used in the output file name")
	f.StringVar(&opts.date, "date", "", "Shop date YYYY-MM-DD (default today)")
	f.StringVar(&opts.title, "title", "", "Override the shop title")
	f.StringVar(&opts.ogTitle, "og-title", "", "Override the rare items title")
	f.BoolVar(&opts.noDate, "no-date", false, "Hide the date under the titles")
	f.BoolVar(&opts.noOG, "no-og", false, "Skip the rare items mosaic")
	f.IntVar(&opts.threshold, "og-threshold", -1, "Days absent for an item to count as rare")
	f.StringVar(&opts.key, "key", "", "Custom destination key")
	f.StringVar(&opts.name, "name", "", "Custom destination name")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func (o *composeOptions) apply(s shop.Settings) shop.Settings {
	if o.title != "" {
		s.NormalTitle = o.title
	}
	if o.ogTitle != "" {
		s.OGTitle = o.ogTitle
	}
	if o.noDate {
		s.ShowDateNormal = false
		s.ShowDateOG = false
	}
	if o.noOG {
		s.OGEnabled = false
	}
	if o.threshold >= 0 {
		s.OGThreshold = o.threshold
	}
	if o.key != "" || o.name != "" {
		s.Custom = &shop.Custom{Key: o.key, Name: o.name}
	}
	return s
}

func runCompose(cmd *cobra.Command, root *rootOptions, opts *composeOptions) error {
	cfg, _, err := config.Load(root.configPath)
	if err != nil {
		return err
	}
	level := cfg.Logging.Level
	if root.logLevel != "" {
		level = root.logLevel
	}
	logger, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	shopDate, err := catalog.ParseShopDate(opts.date)
	if err != nil {
		return err
	}
	items, err := catalog.LoadManifest(opts.manifest, shopDate)
	if err != nil {
		return err
	}

	assets, err := imagepkg.LoadAssets(imagepkg.AssetPaths{
		Font:       cfg.Paths.Font,
		Overlay:    cfg.Paths.Overlay,
		Background: cfg.Paths.Background,
	})
	if err != nil {
		return err
	}

	pipeline := shop.New(assets, shop.Options{OutputDir: cfg.Paths.OutputDir, Workers: cfg.Shop.Workers, Logger: logger})
	sum, err := pipeline.Generate(cmd.Context(), shop.Shop{
		Hash:  opts.hash,
		Date:  shopDate.Format(catalog.DateLayout),
		Items: items,
	}, opts.apply(shop.SettingsFromConfig(cfg.Shop)))

	renderSummary(cmd.OutOrStdout(), catalog.Order(items), sum)
	if errors.Is(err, imagepkg.ErrNoCards) {
		return fmt.Errorf("no items could be rendered from %s", opts.manifest)
	}
	return err
}

func renderSummary(w io.Writer, items []catalog.Item, sum shop.Summary) {
	dropped := map[string]string{}
	for _, d := range sum.Normal.Dropped {
		dropped[d.ID] = d.Reason
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Name", "Price", "Recency", "Status"})
	for i, it := range items {
		status := "ok"
		if reason, ok := dropped[it.ID]; ok {
			status = "dropped: " + reason
		}
		t.AppendRow(table.Row{i + 1, it.ID, it.Name, strconv.Itoa(it.Price), it.Recency.Label(), status})
	}
	t.AppendFooter(table.Row{"", "", "", "", "rendered", fmt.Sprintf("%d/%d", sum.Normal.Rendered, len(items))})
	t.Render()

	if sum.Normal.Path != "" {
		fmt.Fprintf(w, "shop mosaic: %s\n", sum.Normal.Path)
	}
	if sum.OG != nil && sum.OG.Path != "" {
		fmt.Fprintf(w, "rare items mosaic: %s\n", sum.OG.Path)
	}
	if sum.Rarest != nil {
		fmt.Fprintf(w, "rarest item: %s (%s)\n", sum.Rarest.Name, sum.Rarest.Recency.Label())
	}
}
