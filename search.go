/*
 * search.go, part of Molmodsummer.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pengfeili1/Molmodsummer/chemgraph"
)

// Match is an occurrence of a pattern in a molecular graph.
// Forward[i] is the atom matched to the template atom i, and Backward
// is the inverse mapping.
type Match struct {
	Forward  []int
	Backward map[int]int
}

func newMatch(forward []int) Match {
	m := Match{Forward: append([]int(nil), forward...), Backward: make(map[int]int, len(forward))}
	for t, a := range forward {
		m.Backward[a] = t
	}
	return m
}

// Len returns the number of atoms in the match.
func (m Match) Len() int {
	return len(m.Forward)
}

func (m Match) String() string {
	s := make([]string, len(m.Forward))
	for t, a := range m.Forward {
		s[t] = fmt.Sprintf("%d->%d", t, a)
	}
	return "[" + strings.Join(s, " ") + "]"
}

// Search returns all the matches of the pattern P in M, in the order they are found.
// Matches related by a symmetry of the pattern are reported only once, as the one with the
// lexicographically smallest Forward. An empty slice means there are no matches.
// Search doesn't modify P or M, so concurrent searches are fine.
func Search(P *Pattern, M *MolecularGraph) []Match {
	s := newSearcher(P, M, 0)
	s.run()
	return s.results
}

// SearchFirst returns the first match found by Search, and false if there is none.
func SearchFirst(P *Pattern, M *MolecularGraph) (Match, bool) {
	s := newSearcher(P, M, 1)
	s.run()
	if len(s.results) == 0 {
		return Match{}, false
	}
	return s.results[0], true
}

type searcher struct {
	P       *Pattern
	T       *template
	M       *MolecularGraph
	sets    []CriteriaSet
	forward []int
	used    []bool
	// levelEnd[pos] is the level finished when the atom at position pos of the
	// assignment order is set, or -1.
	levelEnd []int
	limit    int
	results  []Match
	tried    int
}

func newSearcher(P *Pattern, M *MolecularGraph, limit int) *searcher {
	T := P.template()
	sets := P.CriteriaSets
	if len(sets) == 0 {
		sets = []CriteriaSet{{}}
	}
	s := &searcher{
		P:        P,
		T:        T,
		M:        M,
		sets:     sets,
		forward:  make([]int, T.size),
		used:     make([]bool, M.Len()),
		levelEnd: make([]int, T.size),
		limit:    limit,
		results:  make([]Match, 0),
	}
	for i := range s.forward {
		s.forward[i] = -1
	}
	pos := 0
	for l, level := range T.levels {
		for range level {
			s.levelEnd[pos] = -1
			pos++
		}
		s.levelEnd[pos-1] = l
	}
	return s
}

func (s *searcher) run() {
	if s.T.size > s.M.Len() {
		return
	}
	alive := make([]int, len(s.sets))
	for i := range alive {
		alive[i] = i
	}
	s.extend(0, alive)
	log.WithFields(log.Fields{"pattern": s.P.Kind.String(), "atoms": s.M.Len(), "tried": s.tried, "matches": len(s.results)}).Debug("Search")
}

// extend assigns the template atom at position pos of the assignment order, and goes on
// recursively. alive holds the criteria sets still satisfied. It returns true when the
// search must stop.
func (s *searcher) extend(pos int, alive []int) bool {
	T := s.T
	if pos == T.size {
		if !s.complete(s.forward) || !s.canonical(s.forward) {
			return false
		}
		s.results = append(s.results, newMatch(s.forward))
		return s.limit > 0 && len(s.results) >= s.limit
	}
	t := T.order[pos]
	var candidates []int
	if pos == 0 {
		candidates = make([]int, s.M.Len())
		for i := range candidates {
			candidates[i] = i
		}
	} else {
		candidates = s.M.Neighbors(s.forward[T.parent[t]])
	}
	for _, a := range candidates {
		if s.used[a] {
			continue
		}
		s.tried++
		next, ok := s.fits(t, a, alive)
		if !ok {
			continue
		}
		s.forward[t] = a
		s.used[a] = true
		if l := s.levelEnd[pos]; l < 0 || s.checkLevel(s.forward, l, pos+1) {
			if s.extend(pos+1, next) {
				return true
			}
		}
		s.forward[t] = -1
		s.used[a] = false
	}
	return false
}

// fits checks whether atom a can be matched to template atom t, given the atoms already
// assigned. It returns the criteria sets, among alive, still satisfied.
func (s *searcher) fits(t, a int, alive []int) ([]int, bool) {
	tn := s.T.g.Neighbors(t)
	bonds := make([][2]int, 0, len(tn)) //template bond, graph bond
	for _, n := range tn {
		if s.forward[n] < 0 {
			continue
		}
		k, ok := s.M.PairIndex(a, s.forward[n])
		if !ok {
			return nil, false
		}
		e, _ := s.T.g.PairIndex(t, n)
		bonds = append(bonds, [2]int{e, k})
	}
	next := make([]int, 0, len(alive))
	for _, i := range alive {
		set := s.sets[i]
		if !set.atomOK(t, a, s.M) {
			continue
		}
		ok := true
		for _, b := range bonds {
			if !set.bondOK(b[0], b[1], s.M) {
				ok = false
				break
			}
		}
		if ok {
			next = append(next, i)
		}
	}
	return next, len(next) > 0
}

// checkLevel runs the checks that apply once all the template atoms of the given level
// are assigned. m is the number of atoms assigned so far.
func (s *searcher) checkLevel(forward []int, level, m int) bool {
	if s.P.Kind != Ring || !s.P.Strong {
		return true
	}
	added := make([]int, len(s.T.levels[level]))
	for i, t := range s.T.levels[level] {
		added[i] = forward[t]
	}
	return strongRingPrefix(s.M, s.P.Size, m, forward[s.T.central], added)
}

// complete runs the checks on a full match.
func (s *searcher) complete(forward []int) bool {
	if s.P.Kind != Ring || !s.P.Strong {
		return true
	}
	return strongRing(s.M, forward)
}

// valid tells whether forward, a full embedding of the template, would be
// accepted by the search.
func (s *searcher) valid(forward []int) bool {
	m := 0
	for l, level := range s.T.levels {
		m += len(level)
		if !s.checkLevel(forward, l, m) {
			return false
		}
	}
	if !s.complete(forward) {
		return false
	}
	for _, set := range s.sets {
		ok := true
		for t, a := range forward {
			if !set.atomOK(t, a, s.M) {
				ok = false
				break
			}
		}
		for e := 0; ok && e < len(s.T.edges); e++ {
			k, _ := s.M.PairIndex(forward[s.T.edges[e][0]], forward[s.T.edges[e][1]])
			ok = set.bondOK(e, k, s.M)
		}
		if ok {
			return true
		}
	}
	return false
}

// canonical returns false if a symmetry of the template maps forward to a lexicographically
// smaller match that the search also accepts.
func (s *searcher) canonical(forward []int) bool {
	img := make([]int, len(forward))
	for _, sigma := range s.T.autos {
		for i, v := range sigma {
			img[i] = forward[v]
		}
		if chemgraph.LessInts(img, forward) && s.valid(img) {
			return false
		}
	}
	return true
}
