package checklist

import (
	"log/slog"
	"slices"

	"github.com/gnames/gnflora/pkg/taxon"
)

// Filter applies criteria to checklist-metadata records and returns the
// surviving rows as a fresh slice; the input is never mutated.
//
// The taxonomy and target name are only consulted when
// criteria.CompleteTaxon is set. That predicate runs last because it
// operates on the taxon-restricted set produced by the other filters.
func Filter(
	records []Record,
	criteria Criteria,
	taxa *taxon.Taxonomy,
	targetName string,
) ([]Record, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	res := make([]Record, 0, len(records))
	for _, rec := range records {
		if keep(rec, criteria) {
			res = append(res, rec)
		}
	}

	if criteria.CompleteTaxon {
		var err error
		res, err = filterCompleteTaxon(res, taxa, targetName)
		if err != nil {
			return nil, err
		}
	}

	if len(records) > 0 && len(res) == 0 {
		// Non-fatal empty-result condition: the caller's filters matched
		// nothing. Surfaced as a warning, not an error.
		slog.Warn("No checklists survived filtering",
			"records", len(records))
	}

	return res, nil
}

func keep(rec Record, c Criteria) bool {
	if len(c.RefIncluded) > 0 && !slices.Contains(c.RefIncluded, rec.Subset) {
		return false
	}
	if slices.Contains(c.RefExcluded, rec.RefID) {
		return false
	}
	if len(c.TypeRef) > 0 && !slices.Contains(c.TypeRef, rec.Type) {
		return false
	}
	if len(c.EntityClass) > 0 &&
		!slices.Contains(c.EntityClass, rec.EntityClass) {
		return false
	}

	// A null flag counts as not indicated.
	if c.NativeIndicated && !flagSet(rec.NativeIndicated) {
		return false
	}
	if c.NaturalIndicated && !flagSet(rec.NaturalIndicated) {
		return false
	}
	if c.EndRef && !flagSet(rec.EndRef) {
		return false
	}
	if c.EndList && !flagSet(rec.EndList) {
		return false
	}
	if c.SuitGeo && !flagSet(rec.SuitGeo) {
		return false
	}

	if rec.Restricted && !c.IncludeRestricted {
		return false
	}

	return true
}

func flagSet(b *bool) bool {
	return b != nil && *b
}

// filterCompleteTaxon keeps a polygon's records only when at least one of
// its checklists is tagged with a taxon whose nested-set span is as wide as
// the target's. A checklist for a narrower subgroup does not certify
// complete coverage of the target by itself.
func filterCompleteTaxon(
	records []Record,
	taxa *taxon.Taxonomy,
	targetName string,
) ([]Record, error) {
	targetSpan, err := taxa.Span(targetName)
	if err != nil {
		return nil, err
	}

	maxSpan := make(map[int]int)
	for _, rec := range records {
		node, ok := taxa.Get(rec.TaxonID)
		if !ok {
			continue
		}
		if s := node.Span(); s > maxSpan[rec.EntityID] {
			maxSpan[rec.EntityID] = s
		}
	}

	res := make([]Record, 0, len(records))
	var dropped int
	for _, rec := range records {
		if maxSpan[rec.EntityID] >= targetSpan {
			res = append(res, rec)
		} else {
			dropped++
		}
	}

	if dropped > 0 {
		slog.Debug("Dropped records without complete taxonomic coverage",
			"target", targetName, "dropped", dropped)
	}

	return res, nil
}
