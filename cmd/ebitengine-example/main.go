package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/psgmml"
	"github.com/quasilyte/psgmml/mmlfile"
)

// This simple CLI tool plays the specified compiled song blob through an
// SN76489-backed chip using Ebitengine audio player.

const (
	sampleRate = 44100
	clockRate  = 3579545
)

func main() {
	loops := flag.Int("loops", 2, "stop after this many passes of the song's infinite repeat (0 = never)")
	flag.Parse()
	flag.Usage = func() {
		fmt.Printf("usage: go run ./cmd/ebitengine-example path/to/music.bin")
		flag.PrintDefaults()
	}
	if len(flag.Args()) < 1 {
		panic("expected at least 1 command-line argument")
	}
	filename := flag.Args()[0]

	raw, err := os.ReadFile(filename)
	if err != nil {
		panic(fmt.Errorf("read song file: %v", err))
	}
	data, err := mmlfile.Load(raw)
	if err != nil {
		panic(fmt.Errorf("loading song file: %v", err))
	}

	seq := psgmml.NewSequencer(data)
	chip := psgmml.NewSN76489Chip(clockRate, sampleRate)
	stream := psgmml.NewStream(seq, chip)
	stream.SetMaxLoopCount(*loops)

	// Create a sound player using the Ebitengine audio context.
	// You can have multiple players, but only one audio context.
	// See Ebitengine docs to learn more.
	audioContext := audio.NewContext(sampleRate)
	player, err := audioContext.NewPlayer(stream)
	if err != nil {
		panic(err)
	}

	g := &game{
		player: player,
		title:  seq.Title(),
		paused: true,
	}

	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}

type game struct {
	player *audio.Player

	title  string
	paused bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if g.player.IsPlaying() {
			g.player.Pause()
		} else {
			g.player.Play()
		}
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.paused {
		ebitenutil.DebugPrint(screen, "Paused... press SPACE")
	} else {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Playing %s...", g.title))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return 640, 480
}
