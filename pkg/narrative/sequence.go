package narrative

// Sequence is a FIFO of messages the UI shows one at a time. It replaces
// timed follow-ups: a multi-part beat is pushed in order and drained by the
// front-end at its own pace.
type Sequence struct {
	items []Message
}

// Push appends messages, skipping empty ones.
func (s *Sequence) Push(msgs ...Message) {
	for _, m := range msgs {
		if !m.IsZero() {
			s.items = append(s.items, m)
		}
	}
}

// Next pops the oldest message.
func (s *Sequence) Next() (Message, bool) {
	if len(s.items) == 0 {
		return Message{}, false
	}
	m := s.items[0]
	s.items = s.items[1:]
	return m, true
}

// Drain pops everything queued.
func (s *Sequence) Drain() []Message {
	out := s.items
	s.items = nil
	return out
}

func (s *Sequence) Len() int {
	return len(s.items)
}
