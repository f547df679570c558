// Command matchups prints a balanced schedule for a number of teams.
//
//	matchups -teams 6 -games 3 [-seed 42] [-attempts 100]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
)

// A single greedy pass fails 4 teams x 2 games about a quarter of the time.
const defaultAttempts = 100

func main() {
	var (
		teams    int
		games    int
		seed     int64
		attempts int
	)
	flag.IntVar(&teams, "teams", 0, "number of teams (named Team1..TeamN)")
	flag.IntVar(&games, "games", 0, "games each team plays")
	flag.Int64Var(&seed, "seed", 0, "random seed; 0 picks one from the clock")
	flag.IntVar(&attempts, "attempts", defaultAttempts, "shuffles to try before giving up")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(context.Background(), os.Stdout, teams, games, seed, attempts); err != nil {
		logger.Error("cannot build schedule", slog.Int("teams", teams), slog.Int("games", games), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, teams, games int, seed int64, attempts int) error {
	if teams <= 0 || teams > brackets.MaxBalancedParticipants {
		return fmt.Errorf("%w: -teams must be between 1 and %d", brackets.ErrInvalidScheduleParams, brackets.MaxBalancedParticipants)
	}

	opts := []brackets.BalancedOption{brackets.WithMaxAttempts(attempts)}
	if seed != 0 {
		opts = append(opts, brackets.WithSeed(seed))
	}
	gen := brackets.NewBalancedGenerator(opts...)

	pairings, err := gen.Generate(ctx, brackets.GenerateScheduleParams{
		Participants:        brackets.ParticipantNames(teams),
		GamesPerParticipant: games,
	})
	if err != nil {
		return err
	}
	return printPairings(out, pairings)
}

func printPairings(out io.Writer, pairings models.PairingSet) error {
	for i, p := range pairings {
		if _, err := fmt.Fprintf(out, "%d. %s vs %s\n", i+1, p.A, p.B); err != nil {
			return err
		}
	}
	return nil
}
