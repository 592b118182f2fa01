package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	magic        = "Shri"
	versionMajor = 4
	versionMinor = 7
	headerSize   = 4 + 1 + 1 + 2 + 4 + 4 + 4 + 4 // magic, major, minor, header_size, compressed, uncompressed, safety_margin, flags
)

// FlagParityContext is bit 0 of the container's flags word.
const FlagParityContext = 1 << 0

// Header is the raw-data container's fixed-size preamble, always
// big-endian on disk regardless of host byte order.
type Header struct {
	CompressedSize   uint32
	UncompressedSize uint32
	SafetyMargin     uint32
	Flags            uint32
}

// Marshal writes magic, version, and the header fields, in that
// order, as the legacy compressor's on-disk layout requires.
func (h Header) Marshal() []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.WriteByte(versionMajor)
	buf.WriteByte(versionMinor)
	binary.Write(&buf, binary.BigEndian, uint16(headerSize-8))
	binary.Write(&buf, binary.BigEndian, h.CompressedSize)
	binary.Write(&buf, binary.BigEndian, h.UncompressedSize)
	binary.Write(&buf, binary.BigEndian, h.SafetyMargin)
	binary.Write(&buf, binary.BigEndian, h.Flags)
	return buf.Bytes()
}

// ParseHeader validates the magic/version and decodes the fixed
// fields from the front of data, returning the header and the number
// of bytes consumed.
func ParseHeader(data []byte) (Header, int, error) {
	if len(data) < headerSize {
		return Header{}, 0, fmt.Errorf("compress: truncated container header (%d bytes)", len(data))
	}
	if string(data[0:4]) != magic {
		return Header{}, 0, fmt.Errorf("compress: bad magic %q", data[0:4])
	}
	if data[4] != versionMajor || data[5] != versionMinor {
		return Header{}, 0, fmt.Errorf("compress: unsupported version %d.%d", data[4], data[5])
	}
	h := Header{
		CompressedSize:   binary.BigEndian.Uint32(data[8:12]),
		UncompressedSize: binary.BigEndian.Uint32(data[12:16]),
		SafetyMargin:     binary.BigEndian.Uint32(data[16:20]),
		Flags:            binary.BigEndian.Uint32(data[20:24]),
	}
	return h, headerSize, nil
}
