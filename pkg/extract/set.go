package extract

import "sort"

// UserSet is an unordered collection of canonical usernames.
type UserSet map[string]struct{}

func NewUserSet(names ...string) UserSet {
	s := make(UserSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s UserSet) Add(name string) {
	s[name] = struct{}{}
}

func (s UserSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s UserSet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending lexicographic order.
func (s UserSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the members present in both sets.
func (s UserSet) Intersect(other UserSet) UserSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(UserSet)
	for n := range small {
		if large.Contains(n) {
			out.Add(n)
		}
	}
	return out
}

// Subtract returns the members of s that are not in other.
func (s UserSet) Subtract(other UserSet) UserSet {
	out := make(UserSet)
	for n := range s {
		if !other.Contains(n) {
			out.Add(n)
		}
	}
	return out
}

// Merge adds every member of other into s.
func (s UserSet) Merge(other UserSet) {
	for n := range other {
		s.Add(n)
	}
}
