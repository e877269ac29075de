package spatial

import (
	"log/slog"
	"slices"
)

// RemoveOverlap drops redundant polygons from the candidate set until no
// remaining pair overlaps by overlapTh or more (in either direction).
//
// Policy per conflicting pair: the smaller-area polygon picks the
// applicable area threshold by its class (areaThIsland for Island, else
// areaThMainland). When the smaller polygon's area reaches that threshold
// it is judged informative enough to stand alone: the larger polygon is
// dropped to avoid double counting. Otherwise the smaller one is dropped.
//
// The pairwise decision is applied one removal at a time, re-deriving the
// conflicts after every removal, until a fixed point is reached. Removing a
// polygon can both resolve and reveal conflicts in three-way overlap
// chains, so a single pass is not enough.
//
// Determinism: conflicts are processed in ascending (minID, maxID) order
// and an equal-area tie treats the lower entity ID as the smaller polygon.
//
// Returns the retained entity IDs (sorted) and the removed ones (in
// removal order).
func RemoveOverlap(
	polygons []Polygon,
	pairs []OverlapPair,
	areaThMainland, areaThIsland, overlapTh float64,
) (retained, removed []int, err error) {
	if areaThMainland < 0 {
		return nil, nil, ThresholdError("area_th_mainland", areaThMainland)
	}
	if areaThIsland < 0 {
		return nil, nil, ThresholdError("area_th_island", areaThIsland)
	}
	if overlapTh < 0 || overlapTh > 1 {
		return nil, nil, ThresholdError("overlap_th", overlapTh)
	}

	candidates := make(map[int]Polygon, len(polygons))
	for _, p := range polygons {
		candidates[p.EntityID] = p
	}

	// Fold directional overlap facts into unordered pairs, keeping the
	// larger of the two percentages.
	overlap := make(map[[2]int]float64, len(pairs))
	for _, pr := range pairs {
		if pr.EntityA == pr.EntityB {
			continue
		}
		key := pairKey(pr.EntityA, pr.EntityB)
		if pr.Pct > overlap[key] {
			overlap[key] = pr.Pct
		}
	}

	for {
		conflict, ok := nextConflict(candidates, overlap, overlapTh)
		if !ok {
			break
		}

		a := candidates[conflict[0]]
		b := candidates[conflict[1]]
		drop := resolvePair(a, b, areaThMainland, areaThIsland)

		delete(candidates, drop)
		removed = append(removed, drop)
		slog.Info("Removed overlapping polygon",
			"entity_id", drop,
			"pair", conflict,
			"overlap_pct", overlap[conflict])
	}

	retained = make([]int, 0, len(candidates))
	for id := range candidates {
		retained = append(retained, id)
	}
	slices.Sort(retained)

	return retained, removed, nil
}

func pairKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// nextConflict returns the lowest (minID, maxID) pair of candidates whose
// overlap reaches the threshold.
func nextConflict(
	candidates map[int]Polygon,
	overlap map[[2]int]float64,
	overlapTh float64,
) ([2]int, bool) {
	var best [2]int
	found := false
	for key, pct := range overlap {
		if pct < overlapTh {
			continue
		}
		if _, ok := candidates[key[0]]; !ok {
			continue
		}
		if _, ok := candidates[key[1]]; !ok {
			continue
		}
		if !found || key[0] < best[0] ||
			(key[0] == best[0] && key[1] < best[1]) {
			best = key
			found = true
		}
	}
	return best, found
}

// resolvePair returns the entity ID to drop. The smaller polygon's class
// decides which area threshold applies; area comparison uses >= so a
// polygon exactly at the threshold is retained.
func resolvePair(a, b Polygon, areaThMainland, areaThIsland float64) int {
	smaller, larger := a, b
	if b.Area < a.Area || (b.Area == a.Area && b.EntityID < a.EntityID) {
		smaller, larger = b, a
	}

	threshold := areaThMainland
	if smaller.Class == ClassIsland {
		threshold = areaThIsland
	}

	if smaller.Area >= threshold {
		return larger.EntityID
	}
	return smaller.EntityID
}
