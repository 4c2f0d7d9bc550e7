package ip2location

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/zstd"
	"lukechampine.com/uint128"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// dbBuffer is the immutable byte image of a database. Every position passed
// to its read methods is 1-based: position 1 is the first byte.
type dbBuffer struct {
	data  []byte
	unmap func() error
}

func newDBBuffer(data []byte) *dbBuffer {
	return &dbBuffer{data: data}
}

// loadDBBuffer maps filename into memory, or reads it whole when mapping is
// not wanted or not possible. zstd compressed files are always decompressed
// into memory.
func loadDBBuffer(filename string, mode LoadMode) (*dbBuffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := stat.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformedHeader, filename)
	}

	magic := make([]byte, len(zstdMagic))
	if n, _ := file.ReadAt(magic, 0); n == len(magic) && bytes.Equal(magic, zstdMagic) {
		log.Debug.Printf("ip2location: %s is zstd compressed, decompressing into memory", filename)
		return readCompressed(file)
	}

	if mode == LoadMemory {
		return readWhole(file, size)
	}
	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		log.Debug.Printf("ip2location: mmap %s: %v, reading into memory", filename, err)
		return readWhole(file, size)
	}
	return &dbBuffer{data: mapped, unmap: mapped.Unmap}, nil
}

func readWhole(file *os.File, size int64) (*dbBuffer, error) {
	data, err := io.ReadAll(io.NewSectionReader(file, 0, size))
	if err != nil {
		return nil, err
	}
	return newDBBuffer(data), nil
}

func readCompressed(file *os.File) (*dbBuffer, error) {
	dec, err := zstd.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("ip2location: decompress %s: %w", file.Name(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s decompresses to nothing", ErrMalformedHeader, file.Name())
	}
	return newDBBuffer(data), nil
}

func (buf *dbBuffer) close() error {
	if buf.unmap == nil {
		return nil
	}
	err := buf.unmap()
	buf.unmap = nil
	return err
}

func (buf *dbBuffer) getLength() uint64 {
	return uint64(len(buf.data))
}

// readCount returns count bytes starting at pos without copying them.
func (buf *dbBuffer) readCount(pos, count uint64) ([]byte, error) {
	if pos == 0 || pos-1+count > buf.getLength() {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, database length %d",
			ErrOutOfBounds, count, pos, buf.getLength())
	}
	return buf.data[pos-1 : pos-1+count], nil
}

func (buf *dbBuffer) readUint8(pos uint64) (uint8, error) {
	b, err := buf.readCount(pos, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (buf *dbBuffer) readUint32(pos uint64) (uint32, error) {
	b, err := buf.readCount(pos, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (buf *dbBuffer) readFloat32(pos uint64) (float32, error) {
	bits, err := buf.readUint32(pos)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// readString reads a one byte length at pos followed by that many bytes of
// UTF-8 text.
func (buf *dbBuffer) readString(pos uint64) (string, error) {
	n, err := buf.readUint8(pos)
	if err != nil {
		return "", err
	}
	b, err := buf.readCount(pos+1, uint64(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: string at offset %d", ErrInvalidEncoding, pos)
	}
	return string(b), nil
}

func (buf *dbBuffer) readIPV4(pos uint64) (ipv4Key, error) {
	v, err := buf.readUint32(pos)
	return ipv4Key(v), err
}

// readIPV6 reads four little-endian words, least significant first.
func (buf *dbBuffer) readIPV6(pos uint64) (uint128.Uint128, error) {
	var words [4]uint32
	for i := range words {
		w, err := buf.readUint32(pos + uint64(i)*4)
		if err != nil {
			return uint128.Zero, err
		}
		words[i] = w
	}
	lo := uint64(words[1])<<32 | uint64(words[0])
	hi := uint64(words[3])<<32 | uint64(words[2])
	return uint128.New(lo, hi), nil
}
