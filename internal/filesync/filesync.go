package filesync

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/polonite/vstoolchain/internal/platform"
)

// Tolerance is the largest mtime difference still treated as "in sync".
// Copies of the same file can disagree by a fraction of a millisecond.
const Tolerance = 10 * time.Millisecond

// Decision is the outcome of comparing a destination with its source.
type Decision int

const (
	// SkipNoDir means the destination's parent directory does not exist.
	SkipNoDir Decision = iota
	// CopyMissing means the destination file does not exist.
	CopyMissing
	// CopyStale means the modification times differ by Tolerance or more.
	CopyStale
	// SkipFresh means the destination is already in sync.
	SkipFresh
)

func (d Decision) String() string {
	switch d {
	case SkipNoDir:
		return "skip-no-dir"
	case CopyMissing:
		return "copy-missing"
	case CopyStale:
		return "copy-stale"
	case SkipFresh:
		return "skip-fresh"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// NeedsCopy reports whether the decision requires a copy.
func (d Decision) NeedsCopy() bool {
	return d == CopyMissing || d == CopyStale
}

// Decide compares dst with src without touching either file.
func Decide(dst, src string) (Decision, error) {
	dir := filepath.Dir(dst)
	dirInfo, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return SkipNoDir, nil
		}
		return 0, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !dirInfo.IsDir() {
		return SkipNoDir, nil
	}

	dstInfo, err := os.Stat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CopyMissing, nil
		}
		return 0, fmt.Errorf("stat %s: %w", dst, err)
	}
	if !dstInfo.Mode().IsRegular() {
		return CopyMissing, nil
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source %s: %w", src, err)
	}

	if absDuration(dstInfo.ModTime().Sub(srcInfo.ModTime())) >= Tolerance {
		return CopyStale, nil
	}
	return SkipFresh, nil
}

var discard = log.New(io.Discard)

// Syncer copies files according to Decide. The zero value is usable and logs nothing.
type Syncer struct {
	Logger *log.Logger
}

// New returns a Syncer that reports copies to logger. A nil logger discards output.
func New(logger *log.Logger) *Syncer {
	return &Syncer{Logger: logger}
}

// Sync brings dst up to date with src and reports whether a copy happened.
// Copies are logged at info level when verbose is set, debug otherwise.
func (s *Syncer) Sync(dst, src string, verbose bool) (bool, error) {
	decision, err := Decide(dst, src)
	if err != nil {
		return false, err
	}
	if !decision.NeedsCopy() {
		s.logger().Debug("up to date", "file", dst, "decision", decision)
		return false, nil
	}

	msg := fmt.Sprintf("Copying %s to %s...", src, dst)
	if verbose {
		s.logger().Info(msg)
	} else {
		s.logger().Debug(msg)
	}

	if decision == CopyStale {
		if err := s.clearReadOnly(dst); err != nil {
			return false, err
		}
		if err := os.Remove(dst); err != nil {
			return false, fmt.Errorf("removing stale %s: %w", dst, err)
		}
	}

	if err := copyFile(src, dst); err != nil {
		return false, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}

	// The copy inherits the source mode, which may be read-only.
	if err := s.clearReadOnly(dst); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Syncer) clearReadOnly(path string) error {
	ro, err := platform.IsReadOnly(path)
	if err != nil || !ro {
		return err
	}
	s.logger().Debug("clearing read-only attribute", "file", path)
	return platform.MakeWritable(path)
}

func (s *Syncer) logger() *log.Logger {
	if s.Logger == nil {
		return discard
	}
	return s.Logger
}

// copyFile duplicates src at dst including its permission bits and
// modification time.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chtimes(dst, time.Now(), srcInfo.ModTime()); err != nil {
		return err
	}
	return platform.Chmod(dst, srcInfo.Mode().Perm())
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
