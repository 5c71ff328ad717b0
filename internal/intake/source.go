package intake

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// Source produces raw answers. Typed input and speech transcripts are both Sources
// and reach the session through the same Submit call.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (string, error)

// Next calls f.
func (f SourceFunc) Next(ctx context.Context) (string, error) { return f(ctx) }

// LineSource reads one answer per line, e.g. from a transcript file or a pipe.
type LineSource struct {
	scanner *bufio.Scanner
}

// NewLineSource creates a Source over r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{scanner: bufio.NewScanner(r)}
}

// Next returns the next line. io.EOF is returned when the input is exhausted.
func (l *LineSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if l.scanner.Scan() {
		return l.scanner.Text(), nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return "", io.EOF
}

// ErrSourceExhausted is returned by Drive when the source ends before the session completes.
var ErrSourceExhausted = errors.New("answer source ended before intake completed")

// Drive feeds answers from src into the session until it completes.
// onReply, when set, is called after every reply, including re-prompts.
func Drive(ctx context.Context, s *Session, src Source, onReply func(Reply)) (Reply, error) {
	for {
		answer, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return Reply{}, ErrSourceExhausted
		}
		if err != nil {
			return Reply{}, err
		}

		reply, err := s.Submit(answer)
		if err != nil {
			return Reply{}, err
		}

		if onReply != nil {
			onReply(reply)
		}

		if reply.Done {
			return reply, nil
		}
	}
}
