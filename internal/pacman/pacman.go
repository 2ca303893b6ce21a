// Package pacman drives the system package manager as a subprocess.
package pacman

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ErrSubprocess is returned when pacman cannot be started or exits non-zero.
var ErrSubprocess = errors.New("pacman: command failed")

// Pacman installs and removes packages with pacman.
type Pacman struct {
	binary    string
	sudo      bool
	noConfirm bool
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	logger    *zap.Logger
}

// Option configures Pacman.
type Option func(*Pacman)

// WithBinary sets the pacman executable.
func WithBinary(path string) Option {
	return func(p *Pacman) {
		if path != "" {
			p.binary = path
		}
	}
}

// WithSudo runs pacman through sudo.
func WithSudo(enabled bool) Option {
	return func(p *Pacman) { p.sudo = enabled }
}

// WithNoConfirm passes --noconfirm to pacman.
func WithNoConfirm(enabled bool) Option {
	return func(p *Pacman) { p.noConfirm = enabled }
}

// WithStdio attaches the subprocess to the given streams.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(p *Pacman) {
		p.stdin = stdin
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pacman) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pacman. By default it runs "sudo pacman" attached to the
// terminal so pacman can prompt.
func New(opts ...Option) *Pacman {
	p := &Pacman{
		binary: "pacman",
		sudo:   true,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Install installs a local archive (pacman -U).
func (p *Pacman) Install(ctx context.Context, path string) error {
	return p.run(ctx, "-U", path)
}

// Remove removes a package together with its unneeded dependencies
// (pacman -Rns).
func (p *Pacman) Remove(ctx context.Context, name string) error {
	return p.run(ctx, "-Rns", name)
}

// Command returns the argv used for the given pacman operation.
func (p *Pacman) Command(op, target string) []string {
	var argv []string
	if p.sudo {
		argv = append(argv, "sudo")
	}
	argv = append(argv, p.binary, op)
	if p.noConfirm {
		argv = append(argv, "--noconfirm")
	}
	return append(argv, target)
}

func (p *Pacman) run(ctx context.Context, op, target string) error {
	argv := p.Command(op, target)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = p.stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	p.logger.Debug("running package manager", zap.String("cmd", strings.Join(argv, " ")))

	if err := cmd.Run(); err != nil {
		p.logger.Warn("package manager failed",
			zap.String("op", op),
			zap.String("target", target),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s: %w", ErrSubprocess, strings.Join(argv, " "), err)
	}
	return nil
}
