package laser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default resource names inside the data directory.
const (
	DefaultLaserFile = "laser.dat"
	DefaultPowerFile = "pin.dat"
)

// ReadLasers returns every well-formed descriptor in r, in order. Lines that
// do not parse are skipped; they are not an error.
func ReadLasers(r io.Reader, log *slog.Logger) ([]Laser, error) {
	if log == nil {
		log = slog.Default()
	}
	var out []Laser
	err := eachLine(r, func(n int, line string) error {
		l, err := ParseLine(line)
		if err != nil {
			log.Debug("skip descriptor", "line", n, "err", err)
			return nil
		}
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read lasers: %w", err)
	}
	return out, nil
}

// ReadInputPowers returns one power per line, in order. Any line that is not
// a non-negative integer fails the whole read.
func ReadInputPowers(r io.Reader) ([]int, error) {
	var out []int
	err := eachLine(r, func(n int, line string) error {
		line = strings.TrimSpace(line)
		p, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("%w: line %d: %q", ErrBadPower, n, line)
		}
		if p < 0 {
			return fmt.Errorf("%w: line %d: %d", ErrNegativePower, n, p)
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// eachLine calls fn for every line of r with its terminator removed. Unlike
// bufio.Scanner it has no line length limit. A final line without a newline
// is still delivered; an empty trailing line is not.
func eachLine(r io.Reader, fn func(n int, line string) error) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line == "" && err != nil {
			return nil
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if ferr := fn(n, line); ferr != nil {
			return ferr
		}
		if err != nil {
			return nil
		}
	}
}

// Source locates the two input resources.
type Source struct {
	Dir       string
	LaserFile string
	PowerFile string
	Log       *slog.Logger
}

// Load reads input powers first, then laser descriptors. A missing file or
// malformed power aborts before anything is returned.
func (s Source) Load() ([]Laser, []int, error) {
	powers, err := s.loadPowers()
	if err != nil {
		return nil, nil, err
	}
	lasers, err := s.loadLasers()
	if err != nil {
		return nil, nil, err
	}
	return lasers, powers, nil
}

func (s Source) loadPowers() ([]int, error) {
	f, err := os.Open(s.path(s.PowerFile, DefaultPowerFile))
	if err != nil {
		return nil, fmt.Errorf("input powers: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	powers, err := ReadInputPowers(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return powers, nil
}

func (s Source) loadLasers() ([]Laser, error) {
	f, err := os.Open(s.path(s.LaserFile, DefaultLaserFile))
	if err != nil {
		return nil, fmt.Errorf("laser data: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	lasers, err := ReadLasers(f, s.Log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return lasers, nil
}

func (s Source) path(name, def string) string {
	if name == "" {
		name = def
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Dir, name)
}
