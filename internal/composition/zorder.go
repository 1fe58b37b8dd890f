package composition

// Direction is the way a layer moves through the stacking order.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// MoveLayer swaps the layer with its neighbor in the requested direction and
// renumbers every z-index to match the new array positions. Moving the top
// layer up or the bottom layer down is a no-op. Returns whether the order
// changed.
func (s *Session) MoveLayer(id string, dir Direction) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	var j int
	switch dir {
	case MoveUp:
		j = i + 1
	case MoveDown:
		j = i - 1
	default:
		return false
	}
	if j < 0 || j >= len(s.spec.Layers) {
		return false
	}

	s.spec.Layers[i], s.spec.Layers[j] = s.spec.Layers[j], s.spec.Layers[i]
	renumber(s.spec.Layers)
	return true
}

// renumber rewrites every z-index to its array position, restoring the
// 0..n-1 permutation invariant in one pass.
func renumber(layers []Layer) {
	for i := range layers {
		layers[i].ZIndex = i
	}
}
