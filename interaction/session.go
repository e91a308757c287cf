package interaction

// Pointer is one pointer sample in container pixels. Modifier reflects the
// active modifier key (aspect lock on resize, 15 degree snap on rotate).
type Pointer struct {
	X        float64
	Y        float64
	Modifier bool
}

// Binder attaches global pointer listeners for the duration of a gesture and
// returns the function that detaches them. The UI shell implements this over
// whatever event system it has.
type Binder interface {
	Bind(onMove func(Pointer), onUp func(Pointer)) (unbind func())
}

// session scopes the input capture of one gesture. End is idempotent: every
// Begin reaches exactly one detach even when a gesture terminates abnormally,
// so listeners can never leak.
type session struct {
	unbind func()
	ended  bool
}

func newSession(binder Binder, onMove func(Pointer), onUp func(Pointer)) *session {
	sess := &session{}
	if binder != nil {
		sess.unbind = binder.Bind(onMove, onUp)
	}
	return sess
}

// End detaches the listeners exactly once.
func (s *session) End() {
	if s.ended {
		return
	}
	s.ended = true
	if s.unbind != nil {
		s.unbind()
	}
}
