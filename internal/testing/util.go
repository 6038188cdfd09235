// Package testing provides fixtures and output capture helpers for msysprefix tests.
package testing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dorcha-inc/msysprefix/internal/core"
)

// ErrAlreadyStopped is returned when Stop is called more than once.
var ErrAlreadyStopped = errors.New("output capture already stopped")

type CapturedOutput struct {
	OriginalStdout *os.File
	OriginalStderr *os.File
	stdoutW        *os.File // write end, closed by Stop to end the drain
	stderrW        *os.File
	stdoutDone     chan drainResult
	stderrDone     chan drainResult
	stopped        bool
}

type drainResult struct {
	data []byte
	err  error
}

// drain copies r into memory until EOF so writers never block on a full pipe.
func drain(r *os.File) chan drainResult {
	done := make(chan drainResult, 1)
	go func() {
		defer core.LogDeferredError(r.Close)
		var buf bytes.Buffer
		_, err := io.Copy(&buf, r)
		done <- drainResult{data: buf.Bytes(), err: err}
	}()
	return done
}

// NewCapturedOutput redirects os.Stdout and os.Stderr into pipes until Stop is called.
func NewCapturedOutput() (*CapturedOutput, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		core.LogDeferredError(stdoutR.Close)
		core.LogDeferredError(stdoutW.Close)
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	os.Stdout = stdoutW
	os.Stderr = stderrW

	return &CapturedOutput{
		OriginalStdout: originalStdout,
		OriginalStderr: originalStderr,
		stdoutW:        stdoutW,
		stderrW:        stderrW,
		stdoutDone:     drain(stdoutR),
		stderrDone:     drain(stderrR),
	}, nil
}

// Stop restores the original streams and returns what was written to them.
func (capturedOutput *CapturedOutput) Stop() (string, string, error) {
	if capturedOutput.stopped {
		return "", "", ErrAlreadyStopped
	}
	capturedOutput.stopped = true

	os.Stdout = capturedOutput.OriginalStdout
	os.Stderr = capturedOutput.OriginalStderr

	core.LogDeferredError(capturedOutput.stdoutW.Close)
	core.LogDeferredError(capturedOutput.stderrW.Close)

	stdout := <-capturedOutput.stdoutDone
	stderr := <-capturedOutput.stderrDone

	if stdout.err != nil {
		return "", "", fmt.Errorf("failed to read captured stdout: %w", stdout.err)
	}
	if stderr.err != nil {
		return "", "", fmt.Errorf("failed to read captured stderr: %w", stderr.err)
	}

	return string(stdout.data), string(stderr.data), nil
}
