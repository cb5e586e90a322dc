package assistant

// Turn is one finished exchange.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Transcript is an append-only list of turns. It is a value: Append returns
// a new Transcript and never changes the receiver's view.
type Transcript struct {
	turns []Turn
}

func NewTranscript(turns ...Turn) Transcript {
	return Transcript{turns: append([]Turn(nil), turns...)}
}

func (t Transcript) Len() int { return len(t.turns) }

// Turns returns a copy of all turns in submission order.
func (t Transcript) Turns() []Turn {
	return append([]Turn(nil), t.turns...)
}

func (t Transcript) Append(turn Turn) Transcript {
	out := make([]Turn, len(t.turns), len(t.turns)+1)
	copy(out, t.turns)
	return Transcript{turns: append(out, turn)}
}

// Recent returns a copy of at most the last n turns.
func (t Transcript) Recent(n int) []Turn {
	if n <= 0 {
		return nil
	}
	start := len(t.turns) - n
	if start < 0 {
		start = 0
	}
	return append([]Turn(nil), t.turns[start:]...)
}

// Tail keeps the last n turns. n <= 0 keeps everything.
func (t Transcript) Tail(n int) Transcript {
	if n <= 0 || len(t.turns) <= n {
		return t
	}
	return Transcript{turns: t.Recent(n)}
}
