package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

var ErrVersion = errors.New("replay: unsupported format version")

// Encode writes a replay as msgpack
func Encode(w io.Writer, r Replay) error {
	return msgpack.NewEncoder(w).Encode(r)
}

// Decode reads a replay and checks its version
func Decode(rd io.Reader) (Replay, error) {
	var r Replay
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return Replay{}, err
	}
	if r.Version != FormatVersion {
		return Replay{}, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return r, nil
}

// Save writes a replay file, creating parent directories
func Save(path string, r Replay) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode replay %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads a replay file
func Load(path string) (Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return Replay{}, err
	}
	defer f.Close()
	r, err := Decode(bufio.NewReader(f))
	if err != nil {
		return Replay{}, fmt.Errorf("load replay %s: %w", path, err)
	}
	return r, nil
}
