package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MJE43/monty-hall-sim/internal/engine"
	"github.com/MJE43/monty-hall-sim/internal/games"
	"github.com/MJE43/monty-hall-sim/internal/report"
)

// errQuit ends the play loop without an error.
var errQuit = errors.New("quit")

// score tracks how each strategy fared during a play session.
type score struct {
	switchPlayed, switchWon int
	stayPlayed, stayWon     int
}

func (s *score) record(res games.PlayResult) {
	if res.Switched {
		s.switchPlayed++
		if res.Won {
			s.switchWon++
		}
		return
	}
	s.stayPlayed++
	if res.Won {
		s.stayWon++
	}
}

func newPlayCmd(a *app) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the game interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = rand.Uint64()
			}
			a.logger.Debug("play session", "seed", seed, "doors", a.doors)
			return a.play(cmd.Context(), engine.NewPCGSource(seed, 0))
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", a.cfg.Seed, "seed for prize placement (0 = random)")
	return cmd
}

func (a *app) play(ctx context.Context, src engine.Source) error {
	in := newLineReader(ctx, a.in)
	var sc score

	for ctx.Err() == nil {
		session, err := games.NewSession(src, a.doors)
		if err != nil {
			return err
		}

		res, err := a.playOne(ctx, in, session)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}
		sc.record(res)

		if res.Won {
			fmt.Fprintf(a.out, "\nDoor %d has the car. You win!\n", res.FinalPick)
		} else {
			fmt.Fprintf(a.out, "\nDoor %d has a goat. The car was behind door %d.\n", res.FinalPick, res.Outcome.PrizeDoor)
		}
		if err := report.WriteOutcome(a.out, res.Outcome); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Score: switch %d/%d wins, stay %d/%d wins\n", sc.switchWon, sc.switchPlayed, sc.stayWon, sc.stayPlayed)

		again, err := prompt(ctx, a, in, "Play again? [Y/n] ")
		if errors.Is(err, errQuit) || strings.HasPrefix(strings.ToLower(again), "n") {
			break
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (a *app) playOne(ctx context.Context, in *lineReader, s *games.Session) (games.PlayResult, error) {
	fmt.Fprintf(a.out, "\nOne of %d doors hides a car, the others hide goats.\n", s.Doors())
	for {
		line, err := prompt(ctx, a, in, fmt.Sprintf("Choose a door [0-%d] (q to quit): ", s.Doors()-1))
		if err != nil {
			return games.PlayResult{}, err
		}
		door, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(a.out, "%q is not a door number\n", line)
			continue
		}
		if err := s.Choose(door); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			continue
		}
		break
	}

	pick, _ := s.Pick()
	other, err := s.SwitchDoor()
	if err != nil {
		return games.PlayResult{}, err
	}
	fmt.Fprintf(a.out, "The host opens doors %s. Each one hides a goat.\n", joinInts(s.Revealed()))

	for {
		line, err := prompt(ctx, a, in, fmt.Sprintf("Stay with door %d or switch to door %d? [s]tay/[w]itch: ", pick, other))
		if err != nil {
			return games.PlayResult{}, err
		}
		switch strings.ToLower(line) {
		case "s", "stay":
			return s.Finish(pick)
		case "w", "switch":
			return s.Finish(other)
		}
	}
}

// lineReader feeds input lines to a channel so prompts can also wait on a
// context.
type lineReader struct {
	lines chan string
	err   error
}

func newLineReader(ctx context.Context, r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lr.lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		lr.err = sc.Err()
	}()
	return lr
}

// prompt reads one trimmed line. EOF and "q" end the session; cancelling ctx
// returns its error without waiting for input.
func prompt(ctx context.Context, a *app, in *lineReader, msg string) (string, error) {
	fmt.Fprint(a.out, msg)
	select {
	case <-ctx.Done():
		fmt.Fprintln(a.out)
		return "", ctx.Err()
	case line, ok := <-in.lines:
		if !ok {
			if in.err != nil {
				return "", in.err
			}
			return "", errQuit
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "q") {
			return "", errQuit
		}
		return line, nil
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
