package commands

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
)

// Opener hands a URL to something that can display it
type Opener interface {
	Open(target string) error
}

// ExecOpener runs an external command with the URL as last argument,
// e.g. xdg-open or open
type ExecOpener struct {
	Command []string
	// OnExit is called from another goroutine when the command fails after it started
	OnExit func(error)
}

// Open starts the command without waiting for the browser to exit
func (o ExecOpener) Open(target string) error {
	if len(o.Command) == 0 {
		return errors.New("no URL opener configured")
	}
	args := append(append([]string{}, o.Command[1:]...), target)
	cmd := exec.Command(o.Command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %s: %w", o.Command[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil && o.OnExit != nil {
			o.OnExit(fmt.Errorf("%s %s: %w", o.Command[0], target, err))
		}
	}()
	return nil
}

// ResolveURL resolves ref against base. Absolute refs and an empty base
// return ref unchanged.
func ResolveURL(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", ref, err)
	}
	if base == "" || r.IsAbs() {
		return r.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	return b.ResolveReference(r).String(), nil
}

// WithQuery appends name=value to the query string of target
func WithQuery(target, name, value string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", target, err)
	}
	q := u.Query()
	q.Set(name, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
