package todd

import (
	"github.com/pkg/errors"

	"qtcount/internal/gf2"
	"qtcount/internal/phasepoly"
)

type candidate struct {
	z     gf2.Row
	score int
}

// scoreCandidates scores every z that the dependency y can be merged with.
// Flagged rows equal to z cancel outright, XORs of a flagged and an
// unflagged row cancel the pair, and for odd |y| the appended copy of z
// either cancels an unflagged row or costs one T.
func scoreCandidates(t phasepoly.Table, y gf2.Row) map[string]*candidate {
	var in, out []int
	for k := range t.Rows {
		if y.Bit(k) {
			in = append(in, k)
		} else {
			out = append(out, k)
		}
	}
	odd := len(in)%2 == 1
	base := 0
	if odd {
		base = -1
	}

	scores := make(map[string]*candidate)
	add := func(z gf2.Row, v int) {
		key := z.Key()
		c, ok := scores[key]
		if !ok {
			c = &candidate{z: z, score: base}
			scores[key] = c
		}
		c.score += v
	}
	for _, k := range in {
		add(t.Rows[k], 1)
	}
	if odd {
		for _, b := range out {
			add(t.Rows[b], 2)
		}
	}
	for _, a := range in {
		for _, b := range out {
			add(t.Rows[a].Xor(t.Rows[b]), 2)
		}
	}
	return scores
}

// bestCandidate picks the highest positive score, preferring the smaller
// row on ties. It returns false when no candidate scores above zero.
func bestCandidate(scores map[string]*candidate) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range scores {
		if c.score <= 0 {
			continue
		}
		if !found || c.score > best.score || (c.score == best.score && c.z.Less(best.z)) {
			best = *c
			found = true
		}
	}
	return best, found
}

// exactScore is the T-count drop from merging z into the rows flagged by y.
func exactScore(t phasepoly.Table, y, z gf2.Row) int {
	idx := make(map[string]int, len(t.Rows))
	for k, r := range t.Rows {
		idx[r.Key()] = k
	}
	unflagged := func(r gf2.Row) bool {
		k, ok := idx[r.Key()]
		return ok && !y.Bit(k)
	}

	s := 0
	for _, k := range y.Ones() {
		w := t.Rows[k].Xor(z)
		switch {
		case w.IsZero():
			s++
		case unflagged(w):
			s += 2
		}
	}
	if y.Count()%2 == 1 {
		if unflagged(z) {
			s++
		} else {
			s--
		}
	}
	return s
}

// merge XORs z into every row flagged by y, appends z when |y| is odd and
// cancels the duplicates this creates. The result must be exactly score
// rows shorter.
func merge(t phasepoly.Table, y, z gf2.Row, score int) (phasepoly.Table, error) {
	next := phasepoly.Table{N: t.N, Rows: make([]gf2.Row, 0, len(t.Rows)+1)}
	for k, r := range t.Rows {
		if y.Bit(k) {
			r = r.Xor(z)
		}
		next.Rows = append(next.Rows, r)
	}
	if y.Count()%2 == 1 {
		next.Rows = append(next.Rows, z)
	}
	next = next.Proper()
	if next.Len() != t.Len()-score {
		return t, errors.Wrapf(ErrNoProgress, "expected %d rows, got %d", t.Len()-score, next.Len())
	}
	return next, nil
}
