package matcher

// Op selects how a group aggregates its whitelist.
type Op int

const (
	// Any matches when at least one whitelist child matches.
	Any Op = iota
	// All matches when the whitelist is non-empty and every child matches.
	All
)

func (o Op) String() string {
	if o == All {
		return "all"
	}
	return "any"
}

// Group combines child predicates. A match on any blacklist child vetoes
// the group before the whitelist is consulted, whatever Op is; Reverse
// inverts the final outcome, after the veto.
type Group struct {
	Op        Op
	Whitelist []Predicate
	Blacklist []Predicate
	Reverse   bool
}

// AnyOf builds an OR-group over the given children.
func AnyOf(children ...Predicate) *Group {
	return &Group{Op: Any, Whitelist: children}
}

// AllOf builds an AND-group over the given children.
func AllOf(children ...Predicate) *Group {
	return &Group{Op: All, Whitelist: children}
}

// Or combines two predicates into a group matching either.
func Or(a, b Predicate) *Group { return AnyOf(a, b) }

// And combines two predicates into a group matching both.
func And(a, b Predicate) *Group { return AllOf(a, b) }

// Not wraps a predicate in a group matching whenever it does not.
func Not(p Predicate) *Group {
	g := AnyOf(p)
	g.Reverse = true
	return g
}

// Match evaluates the group against a snapshot.
func (g *Group) Match(s Snapshot) bool {
	for _, c := range g.Blacklist {
		if c.Match(s) {
			return g.Reverse
		}
	}
	var ok bool
	switch g.Op {
	case All:
		// An empty AND-group never matches: "all of nothing" must not
		// degrade into "everything".
		ok = len(g.Whitelist) > 0
		for _, c := range g.Whitelist {
			if !c.Match(s) {
				ok = false
				break
			}
		}
	default:
		for _, c := range g.Whitelist {
			if c.Match(s) {
				ok = true
				break
			}
		}
	}
	return g.Reverse != ok
}
