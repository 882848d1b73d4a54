package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrNoPlayer is returned when no supported audio player is installed
var ErrNoPlayer = errors.New("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")

// Player plays an audio file to completion
type Player interface {
	Play(ctx context.Context, file string) error
}

// ExecPlayer plays audio through the platform's command line player
type ExecPlayer struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewExecPlayer creates a player for the running platform
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
	}
}

// Command returns the program and arguments that play file
func (p *ExecPlayer) Command(file string) (string, []string, error) {
	switch p.goos {
	case "darwin":
		return "afplay", []string{file}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "/min", file}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		// mpg123 first since it handles MP3 files best
		candidates := []struct {
			name string
			args []string
		}{
			{"mpg123", []string{"-q", file}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}},
			{"play", []string{"-q", file}},
			{"paplay", []string{file}},
			{"aplay", []string{"-q", file}},
		}
		for _, c := range candidates {
			if _, err := p.lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
		return "", nil, ErrNoPlayer
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", p.goos)
	}
}

// Play blocks until playback finishes or ctx is done
func (p *ExecPlayer) Play(ctx context.Context, file string) error {
	name, args, err := p.Command(file)
	if err != nil {
		return err
	}

	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w\nOutput: %s", name, err, string(output))
	}
	return nil
}
