package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyboardInput reads the human controls: arrows steer, up or A accelerates
type KeyboardInput struct{}

func (KeyboardInput) TurnLeft() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
}

func (KeyboardInput) TurnRight() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowRight)
}

func (KeyboardInput) Accelerate() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyA)
}
