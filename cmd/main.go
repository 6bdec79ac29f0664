package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/saeidalz13/battleship-engine/api"
	"github.com/saeidalz13/battleship-engine/db"
	"github.com/saeidalz13/battleship-engine/db/sqlc"
	"github.com/saeidalz13/battleship-engine/internal"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	"github.com/sqlc-dev/pqtype"
)

func main() {
	cfg, err := internal.LoadConfig()
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	console := api.NewConsole(os.Stdin, os.Stdout)
	gameOpts := []mb.GameOption{mb.WithFleet(cfg.Fleet), mb.WithObserver(console)}

	// analytics are optional; a console game runs fine without them
	if cfg.DatabaseUrl != "" {
		psqlDb := db.MustConnectToDb(cfg.DatabaseUrl, cfg.MigrationDir)
		defer psqlDb.Close()

		serverInet := pqtype.Inet{IPNet: internal.ServerIpNet(), Valid: true}
		dbManager := sqlc.NewDbManager(sqlc.New(psqlDb), serverInet)
		gameOpts = append(gameOpts, mb.WithObserver(api.NewAnalyticsObserver(dbManager.Analytics)))
	}

	gameManager := mb.NewBattleshipGameManager()
	game, err := gameManager.CreateGame(gameOpts...)
	if err != nil {
		panic(err)
	}
	defer gameManager.TerminateGame(game.Uuid())

	if cfg.SpectatorPort != 0 {
		server, err := api.NewServer(gameManager, api.WithPort(cfg.SpectatorPort), api.WithStage(cfg.Stage))
		if err != nil {
			panic(err)
		}
		server.RequestProcessor.Track(game)

		go func() {
			if err := server.Run(ctx); err != nil {
				log.Println(err)
			}
		}()
		log.Printf("spectate with ws://localhost:%d%s?%s=%s\n", server.Port(), api.SpectatePath, api.URLQueryGameUuidKeyword, game.Uuid())
	}

	var p1, p2 mb.ShipPlacer
	switch cfg.Placement {
	case internal.PlacementManual:
		p1 = mb.NewDeclaredPlacer(console.ShipSpecProvider(mb.PlayerOne))
		p2 = mb.NewDeclaredPlacer(console.ShipSpecProvider(mb.PlayerTwo))

	default:
		rng := cfg.Rand()
		p1 = mb.NewRandomPlacer(rng, cfg.PlacementMaxAttempts)
		p2 = mb.NewRandomPlacer(rng, cfg.PlacementMaxAttempts)
	}

	if err := game.Setup(p1, p2); err != nil {
		if errors.Is(err, io.EOF) {
			log.Println("input closed during placement")
			return
		}
		panic(err)
	}
	log.Printf("game %s started with fleet %v\n", game.Uuid(), game.Fleet())

	if _, err := game.Play(console); err != nil {
		if errors.Is(err, io.EOF) {
			log.Println("input closed before the game ended")
			return
		}
		panic(err)
	}

	for _, player := range []mb.Player{mb.PlayerOne, mb.PlayerTwo} {
		stats := game.Stats(player)
		fmt.Printf("%s: %d shots, %d hits, %d misses, accuracy %.2f%%\n", player, stats.Shots, stats.Hits, stats.Misses, stats.Accuracy)
	}
}
