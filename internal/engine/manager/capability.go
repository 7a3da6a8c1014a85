// Package manager implements the engine manager of spec.md §4.I: lazy
// engine instantiation, auto-mode selection by scoring, race-mode dispatch
// across every capable engine, and session orchestration (incremental
// assert/retract with rebuild-on-mismatch).
package manager

import (
	"github.com/logos-reasoner/logos/internal/engine"
)

// Known engine names, in declared preference order (used to break scoring
// ties, per spec.md §4.I step 4).
const (
	EngineHorn = "horn"
	EngineSAT  = "sat"
	EngineSMT  = "smt" // reserved, not implemented
	EngineASP  = "asp" // reserved, not implemented
)

// PreferenceOrder is the declared tie-breaking order across known engines.
var PreferenceOrder = []string{EngineHorn, EngineSAT, EngineSMT, EngineASP}

// problemShape summarizes the combined formula ⋀premises∧¬goal for scoring
// (spec.md §4.I step 1-2).
type problemShape struct {
	hasArithmetic bool
	hasEquality   bool
	isHorn        bool
}

// score implements spec.md §4.I step 3: "arithmetic requirement -> +100 if
// supported else -1000; Horn and no arithmetic -> +50 if supports Horn
// (+20 bonus for the dedicated SLD engine); otherwise (non-Horn) -> +50 if
// supports full FOL else -1000; small constant tie-breaker preferring more
// general engines." Equality is scored like arithmetic: +100 if the engine
// handles it natively, else -1000.
func score(name string, caps engine.Capabilities, shape problemShape) int {
	s := 0
	if shape.hasArithmetic {
		if caps.NativeArithmetic {
			s += 100
		} else {
			s -= 1000
		}
	}
	if shape.hasEquality {
		if caps.NativeEquality {
			s += 100
		} else {
			s -= 1000
		}
	}
	if shape.isHorn && !shape.hasArithmetic {
		if caps.SupportsHorn {
			s += 50
			if name == EngineHorn {
				s += 20
			}
		}
	} else {
		if caps.SupportsFullFOL {
			s += 50
		} else {
			s -= 1000
		}
	}
	if caps.SupportsFullFOL {
		s += 2 // general engines edge out narrow ones on remaining ties
	}
	return s
}
