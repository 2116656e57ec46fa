package buildpipeline

// ChannelSink reports progress by sending every event into Ch. Sends
// block when the channel is full, so the consumer must keep receiving
// until the pipeline closes the channel, or hand the remainder to
// DrainEvents if it stops early.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink. A zero sink discards events.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// DrainEvents consumes and discards events from ch until it is closed.
// A consumer that quits before the pipeline finishes must drain the
// channel, otherwise a pending OnEvent send keeps the pipeline
// goroutine blocked forever.
func DrainEvents(ch <-chan Event) {
	for range ch {
	}
}
