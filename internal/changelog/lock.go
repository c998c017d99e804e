package changelog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// ErrLeaseHeld is returned when another writer holds the changelog lease.
var ErrLeaseHeld = errors.New("changelog lease is held by another writer")

// leaseInfo is the content of a lease file.
type leaseInfo struct {
	Owner      string    `yaml:"owner"`
	PID        int       `yaml:"pid"`
	AcquiredAt time.Time `yaml:"acquired_at"`
}

// Lease is exclusive write access to one changelog, represented by a
// <path>.lock file created with O_EXCL.
type Lease struct {
	fs       billy.Filesystem
	lockPath string
	info     leaseInfo
	released bool
}

// LockPath returns the lease file path for the changelog at path.
func LockPath(path string) string {
	return path + ".lock"
}

// AcquireLease takes the exclusive lease on the changelog at path. It fails
// with ErrLeaseHeld if a lease file already exists; stale leases must be
// removed by hand since the holder may be on another machine.
func AcquireLease(fs billy.Filesystem, path, owner string) (*Lease, error) {
	lockPath := LockPath(path)
	info := leaseInfo{Owner: owner, PID: os.Getpid(), AcquiredAt: time.Now().UTC()}

	data, err := yaml.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("marshaling lease: %w", err)
	}

	f, err := fs.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			holder := describeHolder(fs, lockPath)
			return nil, fmt.Errorf("%s: %w%s", path, ErrLeaseHeld, holder)
		}
		return nil, fmt.Errorf("creating lease file %s: %w", lockPath, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		fs.Remove(lockPath) // Best effort cleanup
		return nil, fmt.Errorf("writing lease file %s: %w", lockPath, err)
	}
	if err := f.Close(); err != nil {
		fs.Remove(lockPath)
		return nil, fmt.Errorf("closing lease file %s: %w", lockPath, err)
	}

	return &Lease{fs: fs, lockPath: lockPath, info: info}, nil
}

// Owner returns the owner recorded when the lease was taken.
func (l *Lease) Owner() string {
	return l.info.Owner
}

// Release removes the lease file. Releasing twice is a no-op.
func (l *Lease) Release() error {
	if l == nil || l.released {
		return nil
	}
	l.released = true
	if err := l.fs.Remove(l.lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing lease file %s: %w", l.lockPath, err)
	}
	return nil
}

// describeHolder returns a suffix naming the current lease holder, if the
// lease file can be read.
func describeHolder(fs billy.Filesystem, lockPath string) string {
	data, err := util.ReadFile(fs, lockPath)
	if err != nil {
		return ""
	}
	var info leaseInfo
	if err := yaml.Unmarshal(data, &info); err != nil || info.Owner == "" {
		return ""
	}
	return fmt.Sprintf(" (held by %s, pid %d, since %s)", info.Owner, info.PID, info.AcquiredAt.Format(time.RFC3339))
}
