package domain

// Hash codes are fixed per entity type so that an entity keeps its bucket
// when a repository assigns its identifier.
const (
	employeeHash   = 0x1e5
	departmentHash = 0x2d3
	jobHash        = 0x3a7
	jobHistoryHash = 0x4c1
	taskHash       = 0x5b9
	locationHash   = 0x6f1
	countryHash    = 0x7e3
	regionHash     = 0x8d5
)

// Identity is the equality contract shared by all entities.
type Identity[E any] interface {
	Equal(other E) bool
	HashCode() int
}

// NewID returns a pointer to id, for populating entity identifiers.
func NewID(id int64) *int64 {
	return &id
}

func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}

// EntitySet is an insertion-ordered set of entities. Membership is decided by
// Equal within HashCode buckets, so two persisted instances with the same
// identifier occupy a single slot. The zero value is ready to use.
// Callers never store nil.
type EntitySet[E Identity[E]] struct {
	buckets map[int][]E
	order   []E
}

// NewEntitySet returns a set holding items, duplicates dropped.
func NewEntitySet[E Identity[E]](items ...E) *EntitySet[E] {
	s := &EntitySet[E]{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts item and reports whether it was not already present. s must
// be non-nil; the zero EntitySet is ready to use.
func (s *EntitySet[E]) Add(item E) bool {
	if s.Contains(item) {
		return false
	}
	if s.buckets == nil {
		s.buckets = make(map[int][]E)
	}
	h := item.HashCode()
	s.buckets[h] = append(s.buckets[h], item)
	s.order = append(s.order, item)
	return true
}

// Remove deletes the member equal to item and returns it.
func (s *EntitySet[E]) Remove(item E) (E, bool) {
	var zero E
	if s == nil {
		return zero, false
	}
	h := item.HashCode()
	bucket := s.buckets[h]
	for i, member := range bucket {
		if !member.Equal(item) {
			continue
		}
		s.buckets[h] = append(bucket[:i:i], bucket[i+1:]...)
		if len(s.buckets[h]) == 0 {
			delete(s.buckets, h)
		}
		for j, o := range s.order {
			if o.Equal(item) {
				s.order = append(s.order[:j:j], s.order[j+1:]...)
				break
			}
		}
		return member, true
	}
	return zero, false
}

// Contains reports whether a member equal to item is present.
func (s *EntitySet[E]) Contains(item E) bool {
	if s == nil {
		return false
	}
	for _, member := range s.buckets[item.HashCode()] {
		if member.Equal(item) {
			return true
		}
	}
	return false
}

func (s *EntitySet[E]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Items returns the members in insertion order. The slice is a copy.
func (s *EntitySet[E]) Items() []E {
	if s == nil {
		return nil
	}
	out := make([]E, len(s.order))
	copy(out, s.order)
	return out
}

func (s *EntitySet[E]) Clear() {
	if s == nil {
		return
	}
	s.buckets = nil
	s.order = nil
}
