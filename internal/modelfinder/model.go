// Package modelfinder implements the finite model finder of spec.md §4.J:
// domain-increasing search with lex-leader symmetry breaking, incremental
// premise checking against a partial model, an isomorphism filter for
// multi-model requests, and a SAT-backed path for large domains.
package modelfinder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Model is a finite interpretation over domain {0, ..., n-1}.
type Model struct {
	DomainSize int
	Constants  map[string]int
	Functions  map[string]map[string]int  // name -> (tuple-string -> value)
	Predicates map[string]map[string]bool // name -> set of tuple-strings
}

func newModel(n int) *Model {
	return &Model{
		DomainSize: n,
		Constants:  map[string]int{},
		Functions:  map[string]map[string]int{},
		Predicates: map[string]map[string]bool{},
	}
}

func (m *Model) clone() *Model {
	out := newModel(m.DomainSize)
	for k, v := range m.Constants {
		out.Constants[k] = v
	}
	for name, tbl := range m.Functions {
		cp := make(map[string]int, len(tbl))
		for k, v := range tbl {
			cp[k] = v
		}
		out.Functions[name] = cp
	}
	for name, set := range m.Predicates {
		cp := make(map[string]bool, len(set))
		for k, v := range set {
			cp[k] = v
		}
		out.Predicates[name] = cp
	}
	return out
}

// tupleKey renders an integer tuple as the stable string key used for both
// function tables and predicate extents.
func tupleKey(args []int) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// String renders m in the grep-friendly interpretation format of spec.md
// §6 ("Domain size: n / Domain: {0,1,...,n-1} / Constants: ... / Functions:
// ... / Predicates: ...").
func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Domain size: %d\n", m.DomainSize)
	fmt.Fprintf(&b, "Domain: {%s}\n", domainList(m.DomainSize))

	b.WriteString("Constants:\n")
	for _, name := range sortedKeys(m.Constants) {
		fmt.Fprintf(&b, "  %s = %d\n", name, m.Constants[name])
	}

	b.WriteString("Functions:\n")
	for _, name := range sortedFuncKeys(m.Functions) {
		tbl := m.Functions[name]
		fmt.Fprintf(&b, "  %s: {%s}\n", name, funcTableString(tbl))
	}

	b.WriteString("Predicates:\n")
	for _, name := range sortedPredKeys(m.Predicates) {
		set := m.Predicates[name]
		fmt.Fprintf(&b, "  %s: {%s}\n", name, predSetString(set))
	}
	return b.String()
}

func sortedPredKeys(m map[string]map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func domainList(n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.Itoa(i)
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedFuncKeys(m map[string]map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func funcTableString(tbl map[string]int) string {
	keys := make([]string, 0, len(tbl))
	for k := range tbl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("(%s)->%d", k, tbl[k])
	}
	return strings.Join(parts, ", ")
}

func predSetString(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k, v := range set {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for i, k := range keys {
		keys[i] = "(" + k + ")"
	}
	return strings.Join(keys, ", ")
}
