package psgmml

import (
	"testing"
)

func TestRepeatFinite(t *testing.T) {
	var s repeatStack
	cursor := uint16(0x20)

	s.start(2, 0x10)
	if s.depth != 1 || s.frames[0].count != 2 {
		t.Fatalf("depth=%d count=%d after start", s.depth, s.frames[0].count)
	}

	// First end: one pass done, jump back and record the end address.
	if s.end(&cursor) {
		t.Fatal("finite loop reported as infinite")
	}
	if cursor != 0x10 {
		t.Fatalf("cursor=%#x, want 0x10", cursor)
	}
	if !s.frames[0].hasEnd || s.frames[0].end != 0x20 {
		t.Fatalf("end address not recorded: %+v", s.frames[0])
	}

	// Second end: count exhausted, frame popped, cursor untouched.
	cursor = 0x20
	if s.end(&cursor) {
		t.Fatal("finite loop reported as infinite")
	}
	if cursor != 0x20 || s.depth != 0 {
		t.Fatalf("cursor=%#x depth=%d after final pass", cursor, s.depth)
	}
}

func TestRepeatBreakIfLast(t *testing.T) {
	var s repeatStack
	cursor := uint16(0x30)

	s.start(2, 0x10)

	// Before any completed pass the end address is unknown; the break
	// must not fire even when the count reaches 1.
	s.frames[0].count = 1
	s.breakIfLast(&cursor)
	if cursor != 0x30 || s.depth != 1 {
		t.Fatalf("break fired without a recorded end: cursor=%#x depth=%d", cursor, s.depth)
	}

	s.frames[0].count = 2
	s.end(&cursor) // records end=0x30, jumps to 0x10, count=1

	s.breakIfLast(&cursor)
	if cursor != 0x30 || s.depth != 0 {
		t.Fatalf("break did not fire: cursor=%#x depth=%d", cursor, s.depth)
	}
}

func TestRepeatInfinite(t *testing.T) {
	var s repeatStack
	cursor := uint16(0x40)

	s.start(0, 0x10)
	for i := 0; i < 3; i++ {
		if !s.end(&cursor) {
			t.Fatalf("pass %d: infinite loop not detected", i)
		}
		if cursor != 0x10 {
			t.Fatalf("pass %d: cursor=%#x, want 0x10", i, cursor)
		}
		if s.frames[0].count != 0 {
			t.Fatalf("pass %d: count=%d, want 0", i, s.frames[0].count)
		}
		cursor = 0x40
	}
}

func TestRepeatNested(t *testing.T) {
	var s repeatStack
	cursor := uint16(0)

	s.start(2, 0x10)
	s.start(3, 0x20)
	if s.depth != 2 {
		t.Fatalf("depth=%d, want 2", s.depth)
	}

	// The inner loop runs its passes without touching the outer frame.
	cursor = 0x28
	s.end(&cursor)
	if cursor != 0x20 || s.depth != 2 {
		t.Fatalf("inner pass: cursor=%#x depth=%d", cursor, s.depth)
	}
	cursor = 0x28
	s.end(&cursor)
	cursor = 0x28
	s.end(&cursor)
	if s.depth != 1 {
		t.Fatalf("depth=%d after inner loop, want 1", s.depth)
	}
	if s.frames[0].count != 2 || s.frames[0].start != 0x10 {
		t.Fatalf("outer frame clobbered: %+v", s.frames[0])
	}
}

func TestRepeatOverflowDropped(t *testing.T) {
	var s repeatStack
	for i := 0; i < maxRepeatDepth+1; i++ {
		s.start(2, uint16(i))
	}
	if s.depth != maxRepeatDepth {
		t.Fatalf("depth=%d, want %d", s.depth, maxRepeatDepth)
	}
	// The 9th start was dropped; the top frame is still the 8th.
	if s.frames[maxRepeatDepth-1].start != maxRepeatDepth-1 {
		t.Fatalf("top frame start=%#x, want %#x", s.frames[maxRepeatDepth-1].start, maxRepeatDepth-1)
	}

	// On an empty stack break/end are no-ops.
	s = repeatStack{}
	cursor := uint16(0x99)
	s.breakIfLast(&cursor)
	if s.end(&cursor) {
		t.Fatal("empty stack reported an infinite loop")
	}
	if cursor != 0x99 {
		t.Fatalf("cursor=%#x, want 0x99", cursor)
	}
}
