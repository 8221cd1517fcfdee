package elevator

// Floor is a floor number. Floors are numbered from 1.
type Floor int

// Distance returns the number of floors between f and other.
func (f Floor) Distance(other Floor) int {
	if f > other {
		return int(f - other)
	}

	return int(other - f)
}

// A RequestSet holds the floors waiting to be served. Each floor is held at
// most once. The set remembers the order in which floors were added, which
// decides ties between equally near floors.
type RequestSet struct {
	floors []Floor
}

// NewRequestSet creates an empty RequestSet.
func NewRequestSet() *RequestSet {
	return &RequestSet{}
}

// Add inserts the floor and reports whether it was absent before.
func (s *RequestSet) Add(floor Floor) bool {
	if s.Contains(floor) {
		return false
	}

	s.floors = append(s.floors, floor)

	return true
}

// Remove deletes the floor and reports whether it was present.
func (s *RequestSet) Remove(floor Floor) bool {
	for i, f := range s.floors {
		if f == floor {
			s.floors = append(s.floors[:i], s.floors[i+1:]...)
			return true
		}
	}

	return false
}

// Contains tells if the floor is in the set.
func (s *RequestSet) Contains(floor Floor) bool {
	for _, f := range s.floors {
		if f == floor {
			return true
		}
	}

	return false
}

// Len returns the number of floors in the set.
func (s *RequestSet) Len() int {
	return len(s.floors)
}

// Floors returns a copy of the floors in insertion order.
func (s *RequestSet) Floors() []Floor {
	floors := make([]Floor, len(s.floors))
	copy(floors, s.floors)

	return floors
}

// Nearest returns the floor closest to from. Among equally close floors the
// one added first wins. The second return value is false if the set is empty.
func (s *RequestSet) Nearest(from Floor) (Floor, bool) {
	if len(s.floors) == 0 {
		return 0, false
	}

	best := s.floors[0]
	bestDistance := from.Distance(best)

	for _, f := range s.floors[1:] {
		d := from.Distance(f)
		if d < bestDistance {
			best = f
			bestDistance = d
		}
	}

	return best, true
}
