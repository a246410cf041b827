package psgmml

import (
	"testing"

	"github.com/quasilyte/psgmml/mmlfile"
)

func TestEnvelopeDefault(t *testing.T) {
	var env envelope
	env.init()

	if env.attackLevel != 0xFF || env.attackRate != 0xFF || env.releaseRate != 0xFF {
		t.Fatalf("unexpected default patch: %+v", env)
	}
	if env.decayRate != 0 || env.sustainLevel != 0 || env.sustainRate != 0 {
		t.Fatalf("unexpected default patch: %+v", env)
	}

	// The default patch holds full volume forever: attack level 255
	// skips straight to decay, and decay/sustain rates of 0 never move.
	env.attack()
	for i := 0; i < 1000; i++ {
		env.update()
		if env.current != 0xFF {
			t.Fatalf("update %d: current=%d, want 255", i, env.current)
		}
	}

	// Release drops to silence in one step (release rate 255).
	env.release()
	env.update()
	if env.current != 0 {
		t.Fatalf("current=%d after release, want 0", env.current)
	}
}

func TestEnvelopePhases(t *testing.T) {
	env := envelope{
		attackLevel:  0x10,
		attackRate:   0x60,
		decayRate:    0x40,
		sustainLevel: 0x50,
		sustainRate:  0x08,
		releaseRate:  0x30,
	}

	env.attack()
	if env.current != 0x10 || env.phase != phaseAttack {
		t.Fatalf("after attack: current=%#x phase=%d", env.current, env.phase)
	}

	// Attack ramps by attackRate and clamps at 255 on overflow.
	wantAttack := []uint8{0x70, 0xD0, 0xFF}
	for i, want := range wantAttack {
		env.update()
		if env.current != want {
			t.Errorf("attack step %d: current=%#x, want %#x", i, env.current, want)
		}
	}
	if env.phase != phaseDecay {
		t.Fatalf("phase=%d after attack overflow, want decay", env.phase)
	}

	// Decay subtracts decayRate and snaps to sustainLevel when crossing it.
	env.update()
	if env.current != 0xBF || env.phase != phaseDecay {
		t.Fatalf("decay step: current=%#x phase=%d", env.current, env.phase)
	}
	env.update()
	if env.current != 0x7F || env.phase != phaseDecay {
		t.Fatalf("decay step: current=%#x phase=%d", env.current, env.phase)
	}
	env.update()
	if env.current != 0x50 || env.phase != phaseSustain {
		t.Fatalf("sustain snap: current=%#x phase=%d", env.current, env.phase)
	}

	// Sustain is not a hold: it keeps decaying at sustainRate.
	env.update()
	if env.current != 0x48 || env.phase != phaseSustain {
		t.Fatalf("sustain step: current=%#x phase=%d", env.current, env.phase)
	}

	env.release()
	env.update()
	if env.current != 0x18 || env.phase != phaseRelease {
		t.Fatalf("release step: current=%#x phase=%d", env.current, env.phase)
	}
	env.update()
	if env.current != 0 {
		t.Fatalf("release floor: current=%#x, want 0", env.current)
	}
	env.update()
	if env.current != 0 {
		t.Fatalf("release floor: current=%#x, want 0", env.current)
	}
}

func TestEnvelopeAttackExactTop(t *testing.T) {
	// Reaching exactly 255 without overflow stays in the attack phase;
	// the next step overflows and switches to decay.
	env := envelope{attackLevel: 0xF0, attackRate: 0x0F}
	env.attack()
	env.update()
	if env.current != 0xFF || env.phase != phaseAttack {
		t.Fatalf("current=%#x phase=%d, want 0xFF attack", env.current, env.phase)
	}
	env.update()
	if env.current != 0xFF || env.phase != phaseDecay {
		t.Fatalf("current=%#x phase=%d, want 0xFF decay", env.current, env.phase)
	}
}

func TestEnvelopeSet(t *testing.T) {
	table := mmlfile.Data{
		0x01, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16,
		0x02, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26,
		0xFF,
	}

	var env envelope
	env.init()

	if !env.set(0x02, table, 0) {
		t.Fatal("set(0x02) failed")
	}
	want := envelope{
		attackLevel:  0x21,
		attackRate:   0x22,
		decayRate:    0x23,
		sustainLevel: 0x24,
		sustainRate:  0x25,
		releaseRate:  0x26,
	}
	if env != want {
		t.Fatalf("set(0x02): got %+v, want %+v", env, want)
	}

	// An unmatched patch number hits the 0xFF sentinel and keeps the
	// previous parameters.
	if env.set(0x07, table, 0) {
		t.Fatal("set(0x07) succeeded, want failure")
	}
	if env != want {
		t.Fatalf("failed set modified the envelope: %+v", env)
	}
}
