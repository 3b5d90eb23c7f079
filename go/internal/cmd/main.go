package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spookyvote/costume-clash/go/clients/room_api_client"
	"github.com/spookyvote/costume-clash/go/internal/models"
	"github.com/spookyvote/costume-clash/go/internal/session"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	apiURL := getEnv("ROOM_API_URL", "http://localhost:5000")
	roomCode := os.Getenv("ROOM_CODE")
	playerID := os.Getenv("PLAYER_ID")
	if roomCode == "" || playerID == "" {
		log.Fatal().Msg("ROOM_CODE and PLAYER_ID environment variables are required")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log.Info().
		Str("api_url", apiURL).
		Str("room_code", roomCode).
		Dur("poll_interval", cfg.PollInterval).
		Msg("starting costume-clash session")

	client := room_api_client.NewRoomApiClient(apiURL)
	client.SetTimeout(cfg.RequestTimeout)

	concluded := make(chan struct{})

	sess := session.NewSession(client, session.Config{
		RoomCode:     roomCode,
		PlayerID:     playerID,
		PollInterval: cfg.PollInterval,
		OnPhaseChange: func(from, to models.Phase) {
			if to == models.PhaseConcluded {
				close(concluded)
			}
		},
		OnSubmitResult: func(err error) {
			if err != nil {
				log.Error().Err(err).Msg("vote submission failed - call RetrySubmit to try again")
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess.Start(ctx)
	defer sess.Teardown()

	// Wait for conclusion or shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("shutdown requested")
		return
	case <-concluded:
	}

	for _, entry := range sess.Leaderboard() {
		log.Info().
			Str("player", entry.PlayerName).
			Int("votes", entry.Votes).
			Msg("final standing")
	}
}
