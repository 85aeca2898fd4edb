package matcher

// Add appends predicates to the whitelist.
func (g *Group) Add(children ...Predicate) {
	g.Whitelist = append(g.Whitelist, children...)
}

// AddBlacklist appends predicates to the blacklist.
func (g *Group) AddBlacklist(children ...Predicate) {
	g.Blacklist = append(g.Blacklist, children...)
}

// Size returns the number of direct whitelist children.
func (g *Group) Size() int { return len(g.Whitelist) }

// Empty reports whether the group has no children on either list.
func (g *Group) Empty() bool {
	return len(g.Whitelist) == 0 && len(g.Blacklist) == 0
}

// AsList flattens the whitelist depth-first, left to right, returning the
// leaves this group could ever affirmatively match. Blacklist entries are
// never surfaced, at any depth.
func (g *Group) AsList() []*Leaf {
	var leaves []*Leaf
	for _, c := range g.Whitelist {
		switch v := c.(type) {
		case *Leaf:
			leaves = append(leaves, v)
		case *Group:
			leaves = append(leaves, v.AsList()...)
		}
	}
	return leaves
}

// Remove walks the whitelist recursively, dropping every leaf the filter
// accepts. A nested group is dropped from its parent once the removal
// leaves it with no children at all. Reports whether anything was removed
// anywhere in the subtree.
func (g *Group) Remove(filter func(*Leaf) bool) (bool, error) {
	if filter == nil {
		return false, ErrNilFilter
	}
	return pruneSide(g, whitelistOf, filter), nil
}

// RemoveBlacklist is Remove for the blacklist side of the tree.
func (g *Group) RemoveBlacklist(filter func(*Leaf) bool) (bool, error) {
	if filter == nil {
		return false, ErrNilFilter
	}
	return pruneSide(g, blacklistOf, filter), nil
}

func whitelistOf(g *Group) *[]Predicate { return &g.Whitelist }
func blacklistOf(g *Group) *[]Predicate { return &g.Blacklist }

// pruneSide removes matching leaves from one side of the tree, recursing
// into the same side of nested groups.
func pruneSide(g *Group, side func(*Group) *[]Predicate, filter func(*Leaf) bool) bool {
	list := side(g)
	removed := false
	kept := (*list)[:0]
	for _, c := range *list {
		switch v := c.(type) {
		case *Leaf:
			if filter(v) {
				removed = true
				continue
			}
		case *Group:
			if pruneSide(v, side, filter) {
				removed = true
			}
			if v.Empty() {
				removed = true
				continue
			}
		}
		kept = append(kept, c)
	}
	*list = kept
	return removed
}

// AsReverse returns a copy of the group with Reverse toggled. The copy gets
// its own whitelist and blacklist slices so later Add or Remove calls on one
// tree cannot leak into the other; the child predicates themselves are
// shared, since subtrees are treated as immutable once built.
func (g *Group) AsReverse() *Group {
	return &Group{
		Op:        g.Op,
		Whitelist: append([]Predicate(nil), g.Whitelist...),
		Blacklist: append([]Predicate(nil), g.Blacklist...),
		Reverse:   !g.Reverse,
	}
}
