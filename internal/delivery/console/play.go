package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/service"
)

// Session is the scorer surface the interactive loop drives.
type Session interface {
	SubmitAnswer(selected int) (service.AnswerOutcome, error)
	SkipQuestion() (service.AnswerOutcome, error)
	RequestHint() (string, error)
	Abort() error
}

// Play reads commands from in until the session result is rendered,
// the player quits, the input ends or ctx is cancelled.
func (c *Console) Play(ctx context.Context, s Session, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, in)

	for {
		select {
		case <-ctx.Done():
			_ = s.Abort()
			return ctx.Err()
		case <-c.finished:
			return nil
		case line, ok := <-lines:
			if !ok {
				_ = s.Abort()
				return nil
			}
			if quit := c.handle(s, line); quit {
				return nil
			}
		}
	}
}

// readLines streams trimmed lines from in. The channel is closed at EOF or
// once ctx is done; a read already blocked on in still has to return first.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func (c *Console) handle(s Session, cmd string) (quit bool) {
	var err error

	switch strings.ToLower(cmd) {
	case "":
		return false
	case "q", "quit":
		if err := s.Abort(); err == nil {
			c.printf("Game aborted.\n")
		}
		return true
	case "s", "skip":
		_, err = s.SkipQuestion()
	case "h", "hint":
		var hint string
		hint, err = s.RequestHint()
		if err == nil {
			c.printf("Hint: %s\n", hint)
		}
	default:
		n, convErr := strconv.Atoi(cmd)
		if convErr != nil {
			c.printf("Unknown command %q.\n", cmd)
			return false
		}
		_, err = s.SubmitAnswer(n - 1)
	}

	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidTransition):
		c.printf("Please wait for the next question.\n")
	case errors.Is(err, service.ErrInvalidOption):
		c.printf("Pick one of the listed options.\n")
	case errors.Is(err, entities.ErrInsufficientCoins):
		c.printf("Not enough coins for a hint.\n")
	default:
		c.printf("Error: %v\n", err)
	}

	return false
}
