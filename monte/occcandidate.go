package monte

// OccCandidate identifies one mutable class of occupants: all occupants at
// asymmetric-unit Asym currently holding species Species. It is the unit of
// random selection in OccLocation.ChooseMol.
type OccCandidate struct {
	Asym    int
	Species int
}

// OccCandidateList is an ordered set of OccCandidate. Its order defines
// cand_index, the dense index OccLocation uses to bucket occupants.
type OccCandidateList struct {
	candidates []OccCandidate
	index      map[OccCandidate]int
}

// NewOccCandidateList builds an OccCandidateList from an ordered slice of
// distinct candidates. The order of candidates fixes cand_index assignment.
func NewOccCandidateList(candidates []OccCandidate) *OccCandidateList {
	index := make(map[OccCandidate]int, len(candidates))
	for i, c := range candidates {
		index[c] = i
	}
	return &OccCandidateList{
		candidates: append([]OccCandidate(nil), candidates...),
		index:      index,
	}
}

// Len returns the number of distinct candidate classes.
func (l *OccCandidateList) Len() int { return len(l.candidates) }

// At returns the candidate at cand_index i.
func (l *OccCandidateList) At(i int) OccCandidate { return l.candidates[i] }

// IndexOf returns the cand_index of c, and whether c is present.
func (l *OccCandidateList) IndexOf(c OccCandidate) (int, bool) {
	i, ok := l.index[c]
	return i, ok
}
