package ast

// Visitor is called pre-order on every node; returning a non-nil node
// replaces the visited node in place (used by clausifier rewrite passes).
type Visitor func(n Node) Node

// Walk performs a pre-order traversal, applying v to every node and
// substituting v's non-nil return value before descending into children.
func Walk(n Node, v Visitor) Node {
	if n == nil {
		return nil
	}
	if r := v(n); r != nil {
		n = r
	}
	switch t := n.(type) {
	case *Forall:
		t.Body = Walk(t.Body, v)
		return t
	case *Exists:
		t.Body = Walk(t.Body, v)
		return t
	case *Implies:
		t.L, t.R = Walk(t.L, v), Walk(t.R, v)
		return t
	case *Iff:
		t.L, t.R = Walk(t.L, v), Walk(t.R, v)
		return t
	case *And:
		t.L, t.R = Walk(t.L, v), Walk(t.R, v)
		return t
	case *Or:
		t.L, t.R = Walk(t.L, v), Walk(t.R, v)
		return t
	case *Not:
		t.E = Walk(t.E, v)
		return t
	case *Equals:
		t.L, t.R = Walk(t.L, v), Walk(t.R, v)
		return t
	case *Predicate:
		for i := range t.Args {
			t.Args[i] = Walk(t.Args[i], v)
		}
		return t
	case *Function:
		for i := range t.Args {
			t.Args[i] = Walk(t.Args[i], v)
		}
		return t
	default: // Variable, Constant
		return n
	}
}

// NodeCount returns the number of nodes in the tree rooted at n.
func NodeCount(n Node) int {
	count := 0
	Walk(n, func(Node) Node {
		count++
		return nil
	})
	return count
}

// FreeVars returns the set of variable names occurring free in n (not bound
// by an enclosing Forall/Exists within n).
func FreeVars(n Node) map[string]bool {
	free := map[string]bool{}
	var walk func(n Node, bound map[string]bool)
	walk = func(n Node, bound map[string]bool) {
		switch t := n.(type) {
		case *Forall:
			inner := extend(bound, t.Var)
			walk(t.Body, inner)
		case *Exists:
			inner := extend(bound, t.Var)
			walk(t.Body, inner)
		case *Implies:
			walk(t.L, bound)
			walk(t.R, bound)
		case *Iff:
			walk(t.L, bound)
			walk(t.R, bound)
		case *And:
			walk(t.L, bound)
			walk(t.R, bound)
		case *Or:
			walk(t.L, bound)
			walk(t.R, bound)
		case *Not:
			walk(t.E, bound)
		case *Equals:
			walk(t.L, bound)
			walk(t.R, bound)
		case *Predicate:
			for _, a := range t.Args {
				walk(a, bound)
			}
		case *Function:
			for _, a := range t.Args {
				walk(a, bound)
			}
		case *Variable:
			if !bound[t.Name] {
				free[t.Name] = true
			}
		}
	}
	walk(n, map[string]bool{})
	return free
}

func extend(bound map[string]bool, v string) map[string]bool {
	inner := make(map[string]bool, len(bound)+1)
	for k := range bound {
		inner[k] = true
	}
	inner[v] = true
	return inner
}

// Signature is the name->arity map pair plus constants/free-variable sets
// extracted from a formula, used by the model finder and Horn translator.
type Signature struct {
	Predicates  map[string]int
	Functions   map[string]int
	Constants   map[string]bool
	FreeVars    map[string]bool
	HasEquality bool
}

// NewSignature walks n and builds its Signature, reporting an arity-mismatch
// error if the same name is used with two different arities.
func NewSignature(n Node) (*Signature, error) {
	sig := &Signature{
		Predicates: map[string]int{},
		Functions:  map[string]int{},
		Constants:  map[string]bool{},
		FreeVars:   FreeVars(n),
	}
	var err error
	record := func(m map[string]int, name string, arity int) {
		if err != nil {
			return
		}
		if existing, ok := m[name]; ok && existing != arity {
			err = arityMismatch(name, existing, arity)
			return
		}
		m[name] = arity
	}
	Walk(n, func(node Node) Node {
		switch t := node.(type) {
		case *Predicate:
			record(sig.Predicates, t.Name, len(t.Args))
		case *Function:
			record(sig.Functions, t.Name, len(t.Args))
		case *Constant:
			sig.Constants[t.Name] = true
		case *Equals:
			sig.HasEquality = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sig, nil
}

// MergeSignatures combines several Signatures (one per premise/goal) into one.
func MergeSignatures(sigs ...*Signature) *Signature {
	out := &Signature{
		Predicates: map[string]int{},
		Functions:  map[string]int{},
		Constants:  map[string]bool{},
		FreeVars:   map[string]bool{},
	}
	for _, s := range sigs {
		for k, v := range s.Predicates {
			out.Predicates[k] = v
		}
		for k, v := range s.Functions {
			out.Functions[k] = v
		}
		for k := range s.Constants {
			out.Constants[k] = true
		}
		for k := range s.FreeVars {
			out.FreeVars[k] = true
		}
		out.HasEquality = out.HasEquality || s.HasEquality
	}
	return out
}

// arithmeticPredicates is the fixed closed vocabulary of arithmetic relations
// and operations recognized anywhere in a formula (spec.md §4.H).
var arithmeticPredicates = map[string]bool{
	"lt": true, "gt": true, "lte": true, "gte": true,
	"plus": true, "minus": true, "times": true, "divide": true, "mod": true,
}

// IsArithmeticPredicate reports whether name is in the fixed arithmetic
// vocabulary.
func IsArithmeticPredicate(name string) bool {
	return arithmeticPredicates[name]
}

// HasArithmetic reports whether any arithmetic predicate/function appears
// anywhere in n.
func HasArithmetic(n Node) bool {
	found := false
	Walk(n, func(node Node) Node {
		switch t := node.(type) {
		case *Predicate:
			if IsArithmeticPredicate(t.Name) {
				found = true
			}
		case *Function:
			if IsArithmeticPredicate(t.Name) {
				found = true
			}
		}
		return nil
	})
	return found
}

// HasEquality reports whether n contains an Equals node anywhere.
func HasEquality(n Node) bool {
	found := false
	Walk(n, func(node Node) Node {
		if _, ok := node.(*Equals); ok {
			found = true
		}
		return nil
	})
	return found
}

// PredicatesUsed returns the set of predicate names a formula mentions,
// used by the model finder to schedule incremental premise checks (a
// premise only needs (re-)evaluation once every predicate it depends on is
// fixed in the partial model).
func PredicatesUsed(n Node) map[string]bool {
	used := map[string]bool{}
	Walk(n, func(node Node) Node {
		if p, ok := node.(*Predicate); ok {
			used[p.Name] = true
		}
		return nil
	})
	return used
}
