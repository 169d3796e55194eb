package controls

type chain []SeekCallbacks

// Chain combines several seek consumers. Each is asked in order and the first one
// to report the event as handled wins; the rest are not consulted. Nil entries are
// skipped, and a chain without consumers returns nil.
func Chain(callbacks ...SeekCallbacks) SeekCallbacks {
	var c chain
	for _, cb := range callbacks {
		if cb != nil {
			c = append(c, cb)
		}
	}

	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	default:
		return c
	}
}

func (c chain) OnSeekStarted() bool {
	for _, cb := range c {
		if cb.OnSeekStarted() {
			return true
		}
	}
	return false
}

func (c chain) OnSeekEnded(position int64) bool {
	for _, cb := range c {
		if cb.OnSeekEnded(position) {
			return true
		}
	}
	return false
}
