package rom

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformed is wrapped by any error surfaced while parsing a ROM whose
// bytes don't describe a valid iNES image.
var ErrMalformed = errors.New("malformed rom")

const (
	trainerSize  = 512
	prgBlockSize = 16384
	chrBlockSize = 8192
)

// ROM holds the raw, unmapped contents of a parsed iNES file: the header,
// optional trainer, and PRG/CHR data exactly as they appear in the image.
// It knows nothing about bank switching or address translation — that is
// the cartridge package's job.
type ROM struct {
	Header  *Header
	Trainer []byte // 512 bytes if present, else nil
	PRG     []byte
	CHR     []byte // empty when the header says CHR is RAM-backed
}

// New reads and parses an iNES file from disk.
func New(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rom: couldn't open %q: %w", path, err)
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("rom: %q: %w", path, err)
	}
	return r, nil
}

// Parse reads a full iNES image from r.
func Parse(r io.Reader) (*ROM, error) {
	hbytes := make([]byte, 16)
	if _, err := io.ReadFull(r, hbytes); err != nil {
		return nil, fmt.Errorf("%w: couldn't read header: %v", ErrMalformed, err)
	}

	h, err := parseHeader(hbytes)
	if err != nil {
		return nil, err
	}

	rom := &ROM{Header: h}

	if h.hasTrainer() {
		rom.Trainer = make([]byte, trainerSize)
		if _, err := io.ReadFull(r, rom.Trainer); err != nil {
			return nil, fmt.Errorf("%w: couldn't read trainer: %v", ErrMalformed, err)
		}
	}

	prgLen := prgBlockSize * h.PRGBlocks()
	rom.PRG = make([]byte, prgLen)
	if n, err := io.ReadFull(r, rom.PRG); err != nil {
		return nil, fmt.Errorf("%w: wanted %d bytes of PRG ROM, got %d: %v", ErrMalformed, prgLen, n, err)
	}

	chrLen := chrBlockSize * h.CHRBlocks()
	if chrLen > 0 {
		rom.CHR = make([]byte, chrLen)
		if n, err := io.ReadFull(r, rom.CHR); err != nil {
			return nil, fmt.Errorf("%w: wanted %d bytes of CHR ROM, got %d: %v", ErrMalformed, chrLen, n, err)
		}
	}

	return rom, nil
}

// HasCHRRAM reports whether the cartridge uses CHR RAM rather than ROM.
func (r *ROM) HasCHRRAM() bool {
	return len(r.CHR) == 0
}

func (r *ROM) String() string {
	return r.Header.String()
}
