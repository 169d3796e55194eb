package controls

// SetPosition unconditionally rewrites the current-time label and seek bar position.
// It is the path for repositioning that comes from neither the engine's progress
// reports nor a drag, e.g. restoring a resume point.
func (s *Surface) SetPosition(position int64) {
	s.display.Progress = position
	s.display.CurrentTime = s.format(position)
	s.render()
}

// SetLoading swaps the interactive controls for a loading indicator, or back.
func (s *Surface) SetLoading(loading bool) {
	s.display.Loading = loading
	if s.view != nil {
		s.view.RenderLoading(loading)
	}
}
