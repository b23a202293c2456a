package query

// Selection is an ordered set of selected record keys.
type Selection[K comparable] struct {
	keys []K
	set  map[K]struct{}
}

// NewSelection returns a selection holding keys, duplicates dropped.
func NewSelection[K comparable](keys ...K) *Selection[K] {
	s := &Selection[K]{set: make(map[K]struct{}, len(keys))}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

func (s *Selection[K]) Add(k K) {
	if _, ok := s.set[k]; ok {
		return
	}
	s.set[k] = struct{}{}
	s.keys = append(s.keys, k)
}

func (s *Selection[K]) Remove(k K) {
	if _, ok := s.set[k]; !ok {
		return
	}
	delete(s.set, k)
	for i, key := range s.keys {
		if key == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Toggle selects k if it is not selected, deselects it otherwise.
func (s *Selection[K]) Toggle(k K) {
	if s.Has(k) {
		s.Remove(k)
	} else {
		s.Add(k)
	}
}

func (s *Selection[K]) Has(k K) bool {
	_, ok := s.set[k]
	return ok
}

// Keys returns the selected keys in selection order.
func (s *Selection[K]) Keys() []K {
	out := make([]K, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Selection[K]) Len() int { return len(s.keys) }

func (s *Selection[K]) Clear() {
	s.keys = nil
	s.set = make(map[K]struct{})
}
