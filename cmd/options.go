package cmd

import (
	"github.com/git-l10n/po2json/catalog"
	"github.com/git-l10n/po2json/config"
	"github.com/git-l10n/po2json/flag"
	"github.com/git-l10n/po2json/repository"
)

// loadConfig returns the effective configuration: config files first, then
// environment variables and command line options on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(flag.ConfigFile(), repository.WorkDirOrCwd())
	if err != nil {
		return nil, NewStandardErrorF("%v", err)
	}

	cfg.PoDir = flag.String("po-dir", cfg.PoDir)
	cfg.LocalesDir = flag.String("locales-dir", cfg.LocalesDir)
	cfg.OutputName = flag.String("output-name", cfg.OutputName)

	minify := flag.Bool("minify", *cfg.Minify)
	expand := flag.Bool("expand", *cfg.ExpandForDisplay)
	flagUnreviewed := flag.Bool("flag-unreviewed", *cfg.FlagUnreviewed)
	jobs := flag.Int("jobs", *cfg.Jobs)
	cfg.Minify = &minify
	cfg.ExpandForDisplay = &expand
	cfg.FlagUnreviewed = &flagUnreviewed
	cfg.Jobs = &jobs

	if err := cfg.Validate(); err != nil {
		return nil, NewErrorWithUsage(err)
	}
	return cfg, nil
}

// catalogOptions returns the conversion options of cfg.
func catalogOptions(cfg *config.Config) catalog.Options {
	return catalog.Options{
		Minify:           *cfg.Minify,
		ExpandForDisplay: *cfg.ExpandForDisplay,
		FlagUnreviewed:   *cfg.FlagUnreviewed,
	}
}
