package depgraph

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// edgeSet is an insertion-ordered set of edge handles.
type edgeSet struct {
	m *orderedmap.OrderedMap[EdgeID, struct{}]
}

func newEdgeSet() *edgeSet {
	return &edgeSet{m: orderedmap.New[EdgeID, struct{}]()}
}

// add reports whether e was not already present.
func (s *edgeSet) add(e EdgeID) bool {
	_, present := s.m.Set(e, struct{}{})
	return !present
}

// remove reports whether e was present.
func (s *edgeSet) remove(e EdgeID) bool {
	_, present := s.m.Delete(e)
	return present
}

func (s *edgeSet) has(e EdgeID) bool {
	_, present := s.m.Get(e)
	return present
}

func (s *edgeSet) len() int {
	return s.m.Len()
}

// snapshot copies the handles in insertion order.
func (s *edgeSet) snapshot() []EdgeID {
	out := make([]EdgeID, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
