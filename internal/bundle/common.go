package bundle

// IdentifyCommon computes the set of import references used by every
// artifact in the collection.
//
// The candidate set is drawn from an artifact with the fewest imports:
// the intersection cannot exceed any member, so a minimal artifact must
// contain the whole answer. Each candidate is then checked against
// every other artifact; a full scan, because commonality is a property
// of the entire collection, not a heuristic. Cost is proportional to
// candidate size times artifact count.
//
// Zero artifacts yield nil; a single artifact yields a copy of its own
// import list. Ties in minimum size may pick any minimal artifact; the
// result is the same set regardless, though its order follows the
// chosen candidate.
func IdentifyCommon(artifacts map[string]*Artifact) []string {
	if len(artifacts) == 0 {
		return nil
	}

	var smallest *Artifact
	for _, a := range artifacts {
		if smallest == nil || len(a.Imports) < len(smallest.Imports) {
			smallest = a
		}
	}

	common := make([]string, 0, len(smallest.Imports))
	for _, imp := range smallest.Imports {
		shared := true
		for _, a := range artifacts {
			if a == smallest {
				continue
			}
			if !Contains(a.Imports, imp) {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, imp)
		}
	}
	return common
}
