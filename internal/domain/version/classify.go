// Package version classifies semantic-version changes between production
// baselines and proposed deployment versions.
package version

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/releasegate/releasegate/internal/domain"
)

// Classify compares a production baseline to a proposed version.
// An empty baseline means the component was never deployed → NEW.
// Versions that do not carry at least three numeric dot-segments → UNKNOWN.
// Otherwise the first differing segment (major, minor, patch) decides.
func Classify(baseline, proposed string) domain.VersionChange {
	change := domain.VersionChange{Baseline: baseline, Proposed: proposed}

	if baseline == "" {
		change.Type = domain.ChangeNew
		change.IsMajor = true
		return change
	}

	base, okBase := parseSegments(baseline)
	prop, okProp := parseSegments(proposed)
	if !okBase || !okProp {
		change.Type = domain.ChangeUnknown
		return change
	}

	for i := 0; i < 3; i++ {
		if base[i] == prop[i] {
			continue
		}
		switch i {
		case 0:
			change.Type = domain.ChangeMajor
			change.IsMajor = true
		case 1:
			change.Type = domain.ChangeMinor
		case 2:
			change.Type = domain.ChangePatch
		}
		return change
	}

	change.Type = domain.ChangeNone
	return change
}

// parseSegments splits a version string on "." and returns the first three
// segments as integers. ok is false when fewer than three numeric segments
// are present.
func parseSegments(v string) ([3]int, bool) {
	var out [3]int
	parts := strings.Split(v, ".")
	if len(parts) < 3 {
		return out, false
	}
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, true
}

// ClassifyAll classifies a batch of components against the production
// registry. Baseline lookups run concurrently, bounded by limit, and the
// resulting changes are reassembled in input order. A lookup failure for one
// component never aborts the batch: the component lands in LookupErrors and
// is excluded from Changes. Cancellation mid-batch leaves the uncompleted
// components tagged as lookup errors.
func ClassifyAll(ctx context.Context, components []domain.Component, registry domain.ProductionRegistry, limit int) domain.VersionBatch {
	if limit <= 0 {
		limit = 1
	}

	type slot struct {
		change domain.VersionChange
		failed bool
	}
	slots := make([]slot, len(components))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, comp := range components {
		g.Go(func() error {
			if gctx.Err() != nil {
				slots[i].failed = true
				return nil
			}
			baseline, found, err := registry.ProductionVersion(gctx, comp.Name)
			if err != nil {
				slots[i].failed = true
				return nil
			}
			if !found {
				baseline = ""
			}
			change := Classify(baseline, comp.Version)
			change.Component = comp.Name
			slots[i].change = change
			return nil
		})
	}
	_ = g.Wait()

	var batch domain.VersionBatch
	for i, comp := range components {
		if slots[i].failed {
			batch.LookupErrors = append(batch.LookupErrors, comp.Name)
			continue
		}
		change := slots[i].change
		batch.Changes = append(batch.Changes, change)
		switch {
		case change.Type == domain.ChangeNew:
			batch.NewComponents = append(batch.NewComponents, comp.Name)
		case change.IsMajor:
			batch.MajorChanges = append(batch.MajorChanges, comp.Name)
		}
	}
	return batch
}
