package csvtable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// RetryPolicy decides whether a failed table write should be attempted again.
type RetryPolicy interface {
	// Retry is called after attempt attempts have failed, with the last error.
	Retry(attempt int, err error) bool
}

// PromptPolicy blocks until the operator acknowledges, then retries. There is
// no attempt limit: the in-memory records must not be lost to a transient
// file lock.
type PromptPolicy struct {
	In  io.Reader
	Out io.Writer

	// br wraps In once so input buffered past a newline survives to the
	// next prompt.
	br *bufio.Reader
}

// NewPromptPolicy returns a PromptPolicy wired to the terminal.
func NewPromptPolicy() *PromptPolicy {
	return &PromptPolicy{In: os.Stdin, Out: os.Stderr}
}

func (p *PromptPolicy) Retry(attempt int, err error) bool {
	fmt.Fprintf(p.Out, "Could not write table: %v\nClose the application holding the file and press Enter to retry. ", err)

	if p.br == nil {
		p.br = bufio.NewReader(p.In)
	}
	// A closed input stream means nobody can acknowledge; give up instead of
	// spinning.
	if _, rerr := p.br.ReadString('\n'); rerr != nil {
		return false
	}
	return true
}

// BackoffPolicy retries a bounded number of times with a fixed delay between
// attempts. It is the non-interactive stand-in for PromptPolicy.
type BackoffPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func (b BackoffPolicy) Retry(attempt int, err error) bool {
	if attempt >= b.MaxAttempts {
		return false
	}
	time.Sleep(b.Delay)
	return true
}
