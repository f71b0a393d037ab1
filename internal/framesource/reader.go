// Package framesource reads recorded pose-model output: one JSON object per line,
// each holding a frame timestamp and its landmark list.
package framesource

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/misterclayt0n/formcoach/internal/pose"
)

// Frame is one pose result from the external landmark model.
type Frame struct {
	TimestampMillis int64           `json:"timestamp_ms"`
	Landmarks       []pose.Landmark `json:"landmarks"`
}

// Time converts the frame timestamp (milliseconds since the Unix epoch) to a time.Time.
func (f Frame) Time() time.Time {
	return time.UnixMilli(f.TimestampMillis).UTC()
}

type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	// 33 landmarks with visibility comfortably fit; allow larger lines for verbose writers.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Reader{scanner: sc}
}

// Next returns the next frame, or io.EOF when the stream is exhausted. Blank lines are skipped.
func (r *Reader) Next() (Frame, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		var f Frame
		if err := json.Unmarshal([]byte(text), &f); err != nil {
			return Frame{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return f, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{}, io.EOF
}

// ReadAll reads every frame of a file.
func ReadAll(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var frames []Frame
	r := NewReader(f)
	for {
		frame, err := r.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		frames = append(frames, frame)
	}
}

// Stream delivers frames on a channel until the reader is exhausted, fails or ctx is done.
// The error channel receives at most one value and is closed together with the frame channel.
// When src is an io.Closer it is closed once ctx is done, which unblocks a pending read.
func Stream(ctx context.Context, src io.Reader) (<-chan Frame, <-chan error) {
	frames := make(chan Frame)
	errc := make(chan error, 1)

	stop := func() bool { return false }
	if c, ok := src.(io.Closer); ok {
		stop = context.AfterFunc(ctx, func() { _ = c.Close() })
	}

	go func() {
		defer close(frames)
		defer close(errc)
		defer stop()

		r := NewReader(src)
		for {
			f, err := r.Next()
			if ctx.Err() != nil {
				errc <- ctx.Err()
				return
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				errc <- err
				return
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return frames, errc
}

// Write encodes frames in the format Reader consumes.
func Write(w io.Writer, frames []Frame) error {
	enc := json.NewEncoder(w)
	for _, f := range frames {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
