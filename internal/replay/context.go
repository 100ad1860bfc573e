package replay

// FrameSender is invoked once per pumped frame to keep feeding the UI
// whatever state stream it needs for the current scene.
type FrameSender func(frame int)

// ReplayContext carries the per-run mutable replay state, most importantly
// the persistent frame sender. Script setup steps swap the sender to
// change what the UI receives each frame; it stays installed until
// replaced. The context is passed explicitly to every step.
type ReplayContext struct {
	frameSender FrameSender
}

// NewReplayContext creates an empty ReplayContext.
func NewReplayContext() *ReplayContext {
	return &ReplayContext{}
}

// SetFrameSender installs fn as the persistent per-frame sender. A nil fn
// clears it.
func (rc *ReplayContext) SetFrameSender(fn FrameSender) {
	rc.frameSender = fn
}

// SendFrame invokes the installed sender for the given frame, if any.
func (rc *ReplayContext) SendFrame(frame int) {
	if rc.frameSender != nil {
		rc.frameSender(frame)
	}
}
