package psgmml

// maxRepeatDepth bounds loop nesting. A repeat start beyond this depth is
// silently dropped; its matching repeat end will then operate on the
// enclosing frame. Song data is assumed to stay within the limit.
const maxRepeatDepth = 8

type repeatFrame struct {
	start  uint16
	end    uint16
	hasEnd bool // end is recorded lazily, on the first completed pass
	count  uint8
}

// repeatStack implements nested bytecode loops without allocation.
type repeatStack struct {
	frames [maxRepeatDepth]repeatFrame
	depth  int
}

func (s *repeatStack) start(count uint8, returnAddr uint16) {
	if s.depth == maxRepeatDepth {
		return
	}
	s.frames[s.depth] = repeatFrame{start: returnAddr, count: count}
	s.depth++
}

// breakIfLast exits the current loop early when it is on its final pass.
// It only fires once the loop end address is known, i.e. after at least
// one full iteration.
func (s *repeatStack) breakIfLast(cursor *uint16) {
	if s.depth == 0 {
		return
	}
	top := &s.frames[s.depth-1]
	if top.count == 1 && top.hasEnd {
		*cursor = top.end
		s.depth--
	}
}

// end closes the current loop pass, jumping the cursor back to the loop
// start for another iteration or popping the frame when the count is
// exhausted. It reports whether the frame is an infinite loop (count 0).
func (s *repeatStack) end(cursor *uint16) bool {
	if s.depth == 0 {
		return false
	}
	top := &s.frames[s.depth-1]
	infinite := top.count == 0
	if !infinite {
		top.count--
	}
	if infinite || top.count != 0 {
		top.end = *cursor
		top.hasEnd = true
		*cursor = top.start
	} else {
		s.depth--
	}
	return infinite
}
