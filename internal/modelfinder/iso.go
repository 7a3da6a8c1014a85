package modelfinder

// isomorphicToFound reports whether some permutation of {0,...,n-1} maps m
// onto an already-accepted model's constants, functions, and predicates
// (spec.md §4.J step 5); only attempted for n<=8, since n! grows
// prohibitively otherwise.
func (s *search) isomorphicToFound(m *Model) bool {
	for _, accepted := range s.found {
		if isomorphic(m, accepted) {
			return true
		}
	}
	return false
}

func isomorphic(a, b *Model) bool {
	if a.DomainSize != b.DomainSize {
		return false
	}
	n := a.DomainSize
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	found := false
	permute(perm, 0, func(p []int) bool {
		if matchesUnderPermutation(a, b, p) {
			found = true
			return true // stop
		}
		return false
	})
	return found
}

// permute generates every permutation of perm (recursive swap-and-restore), calling
// visit after each full permutation; visit returning true stops early.
func permute(perm []int, k int, visit func([]int) bool) bool {
	if k == len(perm) {
		return visit(perm)
	}
	for i := k; i < len(perm); i++ {
		perm[k], perm[i] = perm[i], perm[k]
		if permute(perm, k+1, visit) {
			perm[k], perm[i] = perm[i], perm[k]
			return true
		}
		perm[k], perm[i] = perm[i], perm[k]
	}
	return false
}

func matchesUnderPermutation(a, b *Model, p []int) bool {
	for name, v := range a.Constants {
		bv, ok := b.Constants[name]
		if !ok || p[v] != bv {
			return false
		}
	}
	for name, tbl := range a.Functions {
		btbl, ok := b.Functions[name]
		if !ok {
			return false
		}
		for key, v := range tbl {
			permutedKey := permuteTupleKey(key, p)
			bv, ok := btbl[permutedKey]
			if !ok || p[v] != bv {
				return false
			}
		}
	}
	for name, set := range a.Predicates {
		bset, ok := b.Predicates[name]
		if !ok {
			return false
		}
		extra := 0 // true tuples of b not yet matched by a true tuple of a
		for _, v := range bset {
			if v {
				extra++
			}
		}
		for key, v := range set {
			if !v {
				continue
			}
			permutedKey := permuteTupleKey(key, p)
			if !bset[permutedKey] {
				return false
			}
			extra--
		}
		if extra != 0 {
			return false
		}
	}
	return true
}

// permuteTupleKey re-renders a "v1,v2,...,vk" tuple key with each element
// mapped through permutation p.
func permuteTupleKey(key string, p []int) string {
	if key == "" {
		return key
	}
	args := splitCommaInts(key)
	out := make([]int, len(args))
	for i, a := range args {
		out[i] = p[a]
	}
	return tupleKey(out)
}

func splitCommaInts(s string) []int {
	var out []int
	cur := 0
	has := false
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if has {
				out = append(out, cur)
			}
			cur = 0
			has = false
			continue
		}
		cur = cur*10 + int(s[i]-'0')
		has = true
	}
	return out
}
