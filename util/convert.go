package util

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/git-l10n/po2json/catalog"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ConvertFile converts the PO file input and writes the JSON to output.
// Lines skipped while parsing are logged as warnings.
func ConvertFile(input, output string, opts catalog.Options, force bool) (*catalog.Result, error) {
	data, err := ReadPoFile(input)
	if err != nil {
		return nil, err
	}

	var result *catalog.Result
	onComplete := opts.OnComplete
	opts.OnComplete = func(r *catalog.Result) {
		result = r
		if onComplete != nil {
			onComplete(r)
		}
	}

	out, err := catalog.Convert(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", input, err)
	}
	if len(result.Diagnostics) > 0 {
		msgs := make([]string, 0, len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			msgs = append(msgs, d.String())
		}
		ReportWarnAndErrors(msgs, input, true)
	}
	if err := WriteOutput(output, out, force); err != nil {
		return nil, err
	}
	log.Infof("converted %s: %d messages, %d entries", input, result.Messages, result.Entries)
	return result, nil
}

// BuildTarget is one PO file and the messages.json generated from it.
type BuildTarget struct {
	PoFile string
	Locale string
	Output string
}

// PlanBuild maps PO files to <localesDir>/<locale>/<outputName>.
func PlanBuild(poFiles []string, localesDir, outputName string) ([]BuildTarget, error) {
	targets := make([]BuildTarget, 0, len(poFiles))
	seen := make(map[string]string)
	for _, poFile := range poFiles {
		locale, err := LocaleFromPoFile(poFile)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[locale]; ok {
			return nil, fmt.Errorf("%s and %s both map to locale %s", prev, poFile, locale)
		}
		seen[locale] = poFile
		targets = append(targets, BuildTarget{
			PoFile: poFile,
			Locale: locale,
			Output: filepath.Join(localesDir, locale, outputName),
		})
	}
	return targets, nil
}

// RunBuild converts all targets, at most jobs at a time. Generated files
// are always overwritten. It stops at the first failure. opts.OnComplete
// may be called from several goroutines.
func RunBuild(ctx context.Context, targets []BuildTarget, opts catalog.Options, jobs int) error {
	if jobs < 1 {
		jobs = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Debugf("building %s from %s", target.Output, target.PoFile)
			if _, err := ConvertFile(target.PoFile, target.Output, opts, true); err != nil {
				return fmt.Errorf("locale %s: %w", target.Locale, err)
			}
			return nil
		})
	}
	return g.Wait()
}
