package pixbuf

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// RawExt is the file extension of the raw float frame format.
const RawExt = ".rgbaz"

// rawMagic opens every raw frame file.
var rawMagic = [4]byte{'A', 'L', '3', '2'}

const rawVersion = 1

// ErrBadRaw is returned when a raw frame stream is malformed.
var ErrBadRaw = errors.New("pixbuf: malformed raw frame")

// rawHeader is the fixed 16-byte prefix of a raw frame.
type rawHeader struct {
	Magic   [4]byte
	Version uint32
	Width   uint32
	Height  uint32
}

// EncodeRaw writes the buffer losslessly: a little-endian header followed by
// a zstd stream of float32 RGBA samples. The colour space is not stored.
func EncodeRaw(w io.Writer, b *Buffer) error {
	hdr := rawHeader{Magic: rawMagic, Version: rawVersion, Width: uint32(b.width), Height: uint32(b.height)}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("pixbuf: write raw header: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("pixbuf: zstd encoder: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 64<<10)
	var sample [16]byte
	for _, p := range b.Pix {
		binary.LittleEndian.PutUint32(sample[0:], math.Float32bits(p.R))
		binary.LittleEndian.PutUint32(sample[4:], math.Float32bits(p.G))
		binary.LittleEndian.PutUint32(sample[8:], math.Float32bits(p.B))
		binary.LittleEndian.PutUint32(sample[12:], math.Float32bits(p.A))
		if _, err := bw.Write(sample[:]); err != nil {
			_ = enc.Close()
			return fmt.Errorf("pixbuf: zstd encode: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("pixbuf: zstd encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("pixbuf: zstd encode: %w", err)
	}
	return nil
}

// DecodeRaw reads a buffer written by EncodeRaw.
func DecodeRaw(r io.Reader) (*Buffer, error) {
	var hdr rawHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrBadRaw, err)
	}
	if hdr.Magic != rawMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadRaw, hdr.Magic[:])
	}
	if hdr.Version != rawVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadRaw, hdr.Version)
	}
	if hdr.Width > math.MaxInt32 || hdr.Height > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d", ErrAllocation, hdr.Width, hdr.Height)
	}
	b, err := New(int(hdr.Width), int(hdr.Height))
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("pixbuf: zstd decoder: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64<<10)
	var sample [16]byte
	for i := range b.Pix {
		if _, err := io.ReadFull(br, sample[:]); err != nil {
			return nil, fmt.Errorf("%w: pixel %d: %w", ErrBadRaw, i, err)
		}
		b.Pix[i] = RGBA{
			R: math.Float32frombits(binary.LittleEndian.Uint32(sample[0:])),
			G: math.Float32frombits(binary.LittleEndian.Uint32(sample[4:])),
			B: math.Float32frombits(binary.LittleEndian.Uint32(sample[8:])),
			A: math.Float32frombits(binary.LittleEndian.Uint32(sample[12:])),
		}
	}
	return b, nil
}

// LoadRaw reads a raw frame file.
func LoadRaw(path string) (*Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("pixbuf: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeRaw(bufio.NewReader(f))
}

// SaveRaw writes a raw frame file.
func (b *Buffer) SaveRaw(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("pixbuf: create file: %w", err)
	}
	if err := EncodeRaw(f, b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
