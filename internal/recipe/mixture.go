package recipe

// validateReferences checks that every mixture reference names a recipe in
// the store and that references never loop.
func (s *Store) validateReferences() error {
	for _, name := range s.order {
		for _, c := range s.recipes[name].Components {
			ref, ok := c.Reference()
			if !ok {
				continue
			}
			if _, exists := s.recipes[ref]; !exists {
				return &UnknownReferenceError{Recipe: name, Reference: ref}
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(s.order))
	var path []string
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, p := range path {
				if p == name {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, path[start:]...), name)
			return &CycleError{Path: cycle}
		}
		state[name] = visiting
		path = append(path, name)
		for _, c := range s.recipes[name].Components {
			if ref, ok := c.Reference(); ok {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}
	for _, name := range s.order {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// Expand scales the named recipe and replaces every mixture reference with
// the components of the referenced recipe, scaled so they add up to the
// reference's mass. Leaf components with the same name are summed and keep
// the position of their first appearance.
func (s *Store) Expand(name string, spec ScaleSpec) ([]Portion, error) {
	r, err := s.Recipe(name)
	if err != nil {
		return nil, err
	}
	top, err := Scale(r, spec)
	if err != nil {
		return nil, err
	}
	acc := &portionSet{index: make(map[string]int)}
	for _, p := range top {
		if err := s.expandInto(acc, p, 0); err != nil {
			return nil, err
		}
	}
	return acc.portions, nil
}

func (s *Store) expandInto(acc *portionSet, p Portion, depth int) error {
	ref, ok := referenceName(p.Name)
	if !ok {
		acc.add(p)
		return nil
	}
	if depth > len(s.order) {
		return &InvalidRecipeStateError{Recipe: ref, Reason: "mixture nesting deeper than the number of recipes"}
	}
	sub, ok := s.recipes[ref]
	if !ok {
		return &NotFoundError{Name: ref}
	}
	parts, err := Scale(sub, Total(p.Mass))
	if err != nil {
		return err
	}
	for _, q := range parts {
		if err := s.expandInto(acc, q, depth+1); err != nil {
			return err
		}
	}
	return nil
}

type portionSet struct {
	portions []Portion
	index    map[string]int
}

func (ps *portionSet) add(p Portion) {
	if i, ok := ps.index[p.Name]; ok {
		ps.portions[i].Mass += p.Mass
		return
	}
	ps.index[p.Name] = len(ps.portions)
	ps.portions = append(ps.portions, p)
}
