package input

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// maxPending bounds how many bytes of an unfinished escape sequence are
// carried over to the next drain.
const maxPending = 16

// Stream delivers terminal input bytes via a channel.
type Stream struct {
	ch      chan byte
	done    chan struct{}
	exited  chan struct{}
	stop    sync.Once
	pending []byte // Unfinished escape sequence from the previous drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error or the stream is stopped.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{
		ch:     make(chan byte, 128),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		defer close(s.ch)
		for {
			select {
			case <-s.done:
				return
			default:
			}
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop makes the reader goroutine exit without delivering further bytes.
// A read already in progress still has to return first.
func (s *Stream) Stop() {
	s.stop.Do(func() { close(s.done) })
}

// Drain reads all available bytes without blocking and records the decoded
// presses in t. An escape sequence cut off at the end of the available bytes
// is kept and completed by a later drain. It returns false once the
// underlying reader is exhausted.
func (s *Stream) Drain(now time.Time, t *Tracker) bool {
	buf := s.pending
	s.pending = nil
	open := true

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				open = false
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys, rest := decode(buf)
	for _, k := range keys {
		t.Press(k, now)
	}
	if len(rest) <= maxPending {
		s.pending = append([]byte(nil), rest...)
	}
	return open
}

// Decode maps raw terminal bytes to key presses. Arrow keys arrive as
// ESC [ A..D or ESC O A..D sequences; other escape sequences, unmapped bytes
// and a trailing unfinished sequence are skipped.
func Decode(buf []byte) []Key {
	keys, _ := decode(buf)
	return keys
}

// decode is Decode that also returns the unfinished escape sequence at the
// end of buf, if any.
func decode(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if k, ok := RuneKey(rune(b)); ok {
				keys = append(keys, k)
			}
			continue
		}

		n, k, ok := escape(buf[i:])
		if n == 0 {
			return keys, buf[i:]
		}
		if ok {
			keys = append(keys, k)
		}
		i += n - 1
	}
	return keys, nil
}

// escape parses the escape sequence at the start of seq, which begins with
// ESC. It returns the number of bytes the sequence spans, or zero when seq
// ends before the sequence does.
func escape(seq []byte) (n int, k Key, ok bool) {
	if len(seq) < 2 {
		return 0, 0, false
	}
	switch seq[1] {
	case 'O': // SS3, sent in application cursor mode
		if len(seq) < 3 {
			return 0, 0, false
		}
		k, ok = arrowKey(seq[2])
		return 3, k, ok
	case '[': // CSI: parameter bytes, then one final byte
		for j := 2; j < len(seq); j++ {
			c := seq[j]
			if c >= 0x40 && c <= 0x7e {
				k, ok = arrowKey(c)
				return j + 1, k, ok
			}
			if c < 0x20 || c > 0x3f {
				// Malformed; resume decoding at c.
				return j, 0, false
			}
		}
		return 0, 0, false
	}
	// Lone ESC; the next byte is decoded on its own.
	return 1, 0, false
}

func arrowKey(code byte) (Key, bool) {
	switch code {
	case 'A':
		return KeyThrust, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return 0, false
}

// RuneKey maps a typed character to a key.
func RuneKey(r rune) (Key, bool) {
	switch r {
	case 'q', 'Q', '\x03':
		return KeyQuit, true
	case 'a', 'A', 'j', 'J':
		return KeyLeft, true
	case 'd', 'D', 'l', 'L':
		return KeyRight, true
	case 'w', 'W', 'i', 'I':
		return KeyThrust, true
	case ' ':
		return KeyFire, true
	}
	return 0, false
}

// TerminalSource produces key snapshots from a byte stream.
type TerminalSource struct {
	stream  *Stream
	tracker *Tracker
	now     func() time.Time
}

// NewTerminalSource reads keys from r, holding each press for hold.
func NewTerminalSource(r io.Reader, hold time.Duration) *TerminalSource {
	return &TerminalSource{
		stream:  StartStream(r),
		tracker: NewTracker(hold),
		now:     time.Now,
	}
}

// Keys returns the keys held right now. It returns io.EOF once the input is
// closed.
func (s *TerminalSource) Keys() (Keys, error) {
	now := s.now()
	if !s.stream.Drain(now, s.tracker) {
		return 0, io.EOF
	}
	return s.tracker.Snapshot(now), nil
}

// Close stops reading from the underlying reader.
func (s *TerminalSource) Close() error {
	s.stream.Stop()
	return nil
}
