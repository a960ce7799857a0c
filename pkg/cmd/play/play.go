package play

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/golangdaddy/rcproam/pkg/cmd/setup"
	"github.com/golangdaddy/rcproam/pkg/config"
	"github.com/golangdaddy/rcproam/pkg/game"
	"github.com/golangdaddy/rcproam/pkg/race"
)

func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "opens the game window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return play()
		},
	}
	setup.AddRaceFlags(cmd)
	return cmd
}

func play() error {
	logger := setup.Logger()
	//nolint:errcheck // stderr sync
	defer logger.Sync()

	human, err := race.NewHuman(config.PlayerName, game.KeyboardInput{})
	if err != nil {
		return err
	}
	s, err := setup.Session(logger, human)
	if err != nil {
		return err
	}
	g, err := game.NewGame(s, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowTitle("RC Pro-Am")
	ebiten.SetTPS(race.TicksPerSecond)
	return ebiten.RunGame(g)
}
