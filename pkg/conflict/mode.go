package conflict

import (
	"github.com/arthur-debert/aidot/pkg/logging"
)

// Kind is the state of a Mode
type Kind int

const (
	KindAsk Kind = iota
	KindForce
	KindSkip
	KindPreResolved
)

func (k Kind) String() string {
	switch k {
	case KindForce:
		return "force"
	case KindSkip:
		return "skip"
	case KindPreResolved:
		return "pre-resolved"
	default:
		return "ask"
	}
}

// Mode is the conflict policy of one run. It is mutated in place as the
// operator answers prompts and must be passed explicitly, never shared
// between runs.
type Mode struct {
	kind      Kind
	decisions map[string]bool
	fallback  *bool
}

// Force overwrites every conflicting file
func Force() *Mode { return &Mode{kind: KindForce} }

// Skip keeps every conflicting file
func Skip() *Mode { return &Mode{kind: KindSkip} }

// Ask prompts for each conflicting file
func Ask() *Mode { return &Mode{kind: KindAsk} }

// PreResolved consults answers collected before the apply pass. Paths absent
// from decisions use fallback, or an inline prompt when fallback is nil.
func PreResolved(decisions map[string]bool, fallback *bool) *Mode {
	if decisions == nil {
		decisions = make(map[string]bool)
	}
	return &Mode{kind: KindPreResolved, decisions: decisions, fallback: fallback}
}

// Kind returns the current state
func (m *Mode) Kind() Kind { return m.kind }

// Decision returns the pre-resolved answer for path
func (m *Mode) Decision(path string) (write, ok bool) {
	write, ok = m.decisions[path]
	return write, ok
}

// Fallback returns the pre-resolved fallback, if one was chosen
func (m *Mode) Fallback() (write, ok bool) {
	if m.fallback == nil {
		return false, false
	}
	return *m.fallback, true
}

func (m *Mode) String() string { return m.kind.String() }

// Resolve decides whether the existing destination at path is overwritten.
// existing and proposed are optional and only used to show a diff.
func (m *Mode) Resolve(console Console, path string, existing, proposed *string) bool {
	logger := logging.GetLogger("conflict")

	switch m.kind {
	case KindForce:
		return true
	case KindSkip:
		return false
	case KindPreResolved:
		if write, ok := m.decisions[path]; ok {
			return write
		}
		if m.fallback != nil {
			return *m.fallback
		}
		write, forAll := askFile(console, path, existing, proposed)
		if forAll {
			m.fallback = &write
			logger.Debug().Bool("overwrite", write).Msg("Fallback chosen for remaining files")
		}
		return write
	default:
		write, forAll := askFile(console, path, existing, proposed)
		if forAll {
			if write {
				m.kind = KindForce
			} else {
				m.kind = KindSkip
			}
			logger.Debug().Str("mode", m.kind.String()).Msg("Conflict mode escalated")
		}
		return write
	}
}
