// Package emu provides functional AArch64 emulation.
package emu

import (
	"os"
	"sync"
)

// FileDescriptor is one entry in a guest process's open-file table: either
// one of the three inherited standard streams (no HostFile of its own — the
// syscall handler sends reads of fd 0 to WithStdin and writes of fd 1/2 to
// WithStdout/WithStderr without consulting FDTable; any other operation on
// them reaches FDTable, which rejects it) or a guest-opened regular file
// backed by a real host *os.File.
type FileDescriptor struct {
	HostFile *os.File
	Path     string
	Flags    int
	IsOpen   bool
}

// FDTable is the guest file-descriptor table a Machine's syscall handler
// consults for every openat/close/read/write/lseek that isn't one of the
// three standard streams. Fds 0-2 are reserved for stdin/stdout/stderr and
// are never reassigned by Open.
type FDTable struct {
	fds    map[uint64]*FileDescriptor
	nextFD uint64
	mu     sync.Mutex
}

// firstGuestFD is the lowest fd number Open ever hands out: 0, 1, and 2 stay
// reserved for the standard streams for the table's whole lifetime.
const firstGuestFD uint64 = 3

// NewFDTable creates a file descriptor table with the standard streams
// pre-registered as open, matching a freshly exec'd Linux process.
func NewFDTable() *FDTable {
	t := &FDTable{
		fds:    make(map[uint64]*FileDescriptor),
		nextFD: firstGuestFD,
	}

	t.fds[0] = &FileDescriptor{Path: "stdin", IsOpen: true}
	t.fds[1] = &FileDescriptor{Path: "stdout", IsOpen: true}
	t.fds[2] = &FileDescriptor{Path: "stderr", IsOpen: true}

	return t
}

// Open opens a file and returns a new file descriptor.
func (t *FDTable) Open(path string, flags int, mode os.FileMode) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Open the file on the host
	hostFile, err := os.OpenFile(path, flags, mode)
	if err != nil {
		return 0, err
	}

	// Allocate new FD
	fd := t.nextFD
	t.nextFD++

	t.fds[fd] = &FileDescriptor{
		HostFile: hostFile,
		Path:     path,
		Flags:    flags,
		IsOpen:   true,
	}

	return fd, nil
}

// Close closes a file descriptor.
func (t *FDTable) Close(fd uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, exists := t.fds[fd]
	if !exists || !entry.IsOpen {
		return os.ErrInvalid
	}

	// Special handling for stdin/stdout/stderr
	if fd <= 2 {
		// Mark as closed but don't actually close anything
		entry.IsOpen = false
		return nil
	}

	// Close the host file
	if entry.HostFile != nil {
		err := entry.HostFile.Close()
		if err != nil {
			return err
		}
	}

	entry.HostFile = nil
	entry.IsOpen = false

	return nil
}

// IsOpen checks if a file descriptor is open.
func (t *FDTable) IsOpen(fd uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, exists := t.fds[fd]
	return exists && entry.IsOpen
}

// Read reads from a file descriptor into a buffer.
func (t *FDTable) Read(fd uint64, buf []byte) (int, error) {
	t.mu.Lock()
	entry, exists := t.fds[fd]
	if !exists || !entry.IsOpen {
		t.mu.Unlock()
		return 0, os.ErrInvalid
	}

	hostFile := entry.HostFile
	t.mu.Unlock()

	// stdin is handled separately by the syscall handler
	if fd == 0 {
		return 0, os.ErrInvalid
	}

	if hostFile == nil {
		return 0, os.ErrInvalid
	}

	return hostFile.Read(buf)
}

// Write writes a buffer to a file descriptor.
func (t *FDTable) Write(fd uint64, buf []byte) (int, error) {
	t.mu.Lock()
	entry, exists := t.fds[fd]
	if !exists || !entry.IsOpen {
		t.mu.Unlock()
		return 0, os.ErrInvalid
	}

	hostFile := entry.HostFile
	t.mu.Unlock()

	// stdout/stderr are handled separately by the syscall handler
	if fd <= 2 {
		return 0, os.ErrInvalid
	}

	if hostFile == nil {
		return 0, os.ErrInvalid
	}

	return hostFile.Write(buf)
}

// Seek sets the file position for the given file descriptor, backing the
// guest lseek syscall. Only guest-opened regular files can be repositioned;
// the standard streams return EINVAL the same way a real pipe or terminal fd
// would for an unseekable file.
func (t *FDTable) Seek(fd uint64, offset int64, whence int) (int64, error) {
	t.mu.Lock()
	entry, exists := t.fds[fd]
	if !exists || !entry.IsOpen {
		t.mu.Unlock()
		return 0, os.ErrInvalid
	}

	hostFile := entry.HostFile
	t.mu.Unlock()

	// stdin/stdout/stderr can't be seeked
	if fd <= 2 {
		return 0, os.ErrInvalid
	}

	if hostFile == nil {
		return 0, os.ErrInvalid
	}

	return hostFile.Seek(offset, whence)
}
