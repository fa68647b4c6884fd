package dom

// Strategy extracts one field from a node. It reports false when the
// markup it targets is absent.
type Strategy func(Node) (string, bool)

// FirstOf tries each strategy in order and returns the first hit.
func FirstOf(strategies ...Strategy) Strategy {
	return func(n Node) (string, bool) {
		for _, s := range strategies {
			if v, ok := s(n); ok {
				return v, true
			}
		}
		return "", false
	}
}

// Or runs s and substitutes def when it misses.
func (s Strategy) Or(n Node, def string) string {
	if v, ok := s(n); ok {
		return v
	}
	return def
}

// TextAt builds a strategy that walks to the first descendant matching each
// query in turn and reads its visible text.
func TextAt(path ...Classes) Strategy {
	return func(n Node) (string, bool) {
		cur, ok := walk(n, path)
		if !ok {
			return "", false
		}
		return cur.Text(), true
	}
}

// RawTextAt is TextAt reading the direct text children instead.
func RawTextAt(path ...Classes) Strategy {
	return func(n Node) (string, bool) {
		cur, ok := walk(n, path)
		if !ok {
			return "", false
		}
		return cur.RawText(), true
	}
}

func walk(n Node, path []Classes) (Node, bool) {
	cur := n
	for _, c := range path {
		next, ok := cur.First(c)
		if !ok {
			return Node{}, false
		}
		cur = next
	}
	return cur, true
}
