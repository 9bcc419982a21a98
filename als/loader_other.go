//go:build !linux && !darwin

package als

import (
	"fmt"
	"os"
)

// Open loads the set file into memory on platforms without mmap support.
func Open(path string) (*LiveSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty set file: %s", path)
	}
	return LoadBytes(data)
}
