package graph

import "sort"

// DeterminePreferences unions a self-loop triple (i, i, m) into the relation
// for every distinct vertex id, where m is the median of all similarity
// values in sims. The median is a common neutral preference: it biases the
// run toward a moderate number of clusters.
//
// An empty relation is returned unchanged. Self-loops already present in
// sims are not replaced; the added triples accumulate alongside them.
func DeterminePreferences(sims []Similarity) []Similarity {
	if len(sims) == 0 {
		return sims
	}

	return EmbedPreferences(sims, median(sims))
}

// EmbedPreferences unions a self-loop triple (i, i, preference) into the
// relation for every distinct vertex id appearing anywhere in sims.
//
// The self-loops are appended in ascending id order so that two runs over
// the same relation see the same edge enumeration order, which downstream
// tie-break rules depend on.
func EmbedPreferences(sims []Similarity, preference float64) []Similarity {
	seen := make(map[int64]struct{}, len(sims))
	for _, s := range sims {
		seen[s.Source] = struct{}{}
		seen[s.Target] = struct{}{}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Similarity, len(sims), len(sims)+len(ids))
	copy(out, sims)
	for _, id := range ids {
		out = append(out, Similarity{Source: id, Target: id, Value: preference})
	}

	return out
}

// median returns the middle similarity value for an odd count, or the mean
// of the two central values for an even count. The sorted intermediate is
// scoped to this function and released once the middle positions have been
// read.
func median(sims []Similarity) float64 {
	values := make([]float64, len(sims))
	for i, s := range sims {
		values[i] = s.Value
	}
	sort.Float64s(values)

	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}

	return (values[mid-1] + values[mid]) / 2
}
