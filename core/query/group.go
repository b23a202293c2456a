package query

// Group holds the records sharing a key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy buckets items by key. Groups are ordered by first-seen key and
// items keep their relative order inside a group.
func GroupBy[K comparable, T any](items []T, key func(T) K) []Group[K, T] {
	pos := make(map[K]int)
	groups := make([]Group[K, T], 0)
	for _, item := range items {
		k := key(item)
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Index is a key -> record lookup built once per collection load.
type Index[K comparable, T any] struct {
	m map[K]T
}

// NewIndex indexes items by key. On duplicate keys the first record wins.
func NewIndex[K comparable, T any](items []T, key func(T) K) Index[K, T] {
	m := make(map[K]T, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := m[k]; !ok {
			m[k] = item
		}
	}
	return Index[K, T]{m: m}
}

func (idx Index[K, T]) Get(k K) (T, bool) {
	v, ok := idx.m[k]
	return v, ok
}

func (idx Index[K, T]) Len() int { return len(idx.m) }
