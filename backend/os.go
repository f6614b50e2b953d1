package backend

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"syscall"
)

// OSBackend implements Backend on the local filesystem with full fsync
// durability. Flush opens the path and calls fsync on it; recognized
// "flush unsupported on this object kind" failures are treated as success
// so the rewrite protocol stays portable across platforms that cannot
// open or fsync directories.
type OSBackend struct{}

var _ Backend = OSBackend{}
var _ LineStreamer = OSBackend{}

func (OSBackend) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (OSBackend) Rename(_ context.Context, oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (OSBackend) WriteAll(_ context.Context, name string, data []byte) error {
	return os.WriteFile(name, data, 0600)
}

func (OSBackend) Append(_ context.Context, name string, data []byte) error {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (OSBackend) ReadAll(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSBackend) MkdirAll(_ context.Context, dir string) error {
	return os.MkdirAll(dir, 0750)
}

func (OSBackend) Remove(_ context.Context, name string) error {
	return os.Remove(name)
}

func (OSBackend) Flush(_ context.Context, name string, dir bool) error {
	f, err := os.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		if flushUnsupported(err, dir) {
			return nil
		}
		return err
	}
	defer f.Close()
	if err := f.Sync(); err != nil {
		if flushUnsupported(err, dir) {
			return nil
		}
		return err
	}
	return nil
}

// ReadLines streams name line by line. The final empty segment of a
// newline-terminated file is emitted, matching strings.Split semantics.
func (OSBackend) ReadLines(_ context.Context, name string, fn func(line string) error) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		switch {
		case err == nil:
			if cbErr := fn(line[:len(line)-1]); cbErr != nil {
				return cbErr
			}
		case errors.Is(err, io.EOF):
			return fn(line)
		default:
			return err
		}
	}
}

// flushUnsupported recognizes failure signatures that mean the medium
// cannot flush this object kind. EISDIR, EINVAL and ENOTSUP are always
// tolerated; EPERM and EACCES only when flushing a directory, where some
// platforms refuse to hand out a syncable handle.
func flushUnsupported(err error, dir bool) bool {
	if errors.Is(err, syscall.EISDIR) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTSUP) {
		return true
	}
	if dir && (errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)) {
		return true
	}
	return false
}
