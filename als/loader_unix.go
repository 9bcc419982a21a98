//go:build linux || darwin

package als

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open mmaps the set file read-only and parses it. The mapping is released
// before Open returns; decompression has already copied everything the
// document needs.
func Open(path string) (*LiveSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		return nil, fmt.Errorf("empty set file: %s", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	defer func() { _ = unix.Munmap(data) }()

	return Load(bytes.NewReader(data))
}
