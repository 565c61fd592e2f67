package disk

import "encoding/binary"

// readU16LE/readU32LE/readU16BE/readU32BE decode fixed-width integers from a
// byte slice without requiring an io.Reader: directory and FAT records are
// parsed out of whole-sector buffers read in one shot, and the decoder picks
// the field endianness individually rather than per-record (several NW386 id
// fields are big-endian inside an otherwise little-endian record).

func readU16LE(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func readU32LE(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func readU16BE(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func readU32BE(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// AsciizToString trims a fixed-length ASCII field at its first NUL byte.
func AsciizToString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// AsciiWithLength truncates a fixed-length ASCII field to a separately
// stored length prefix, clamping to the buffer's capacity.
func AsciiWithLength(b []byte, length int) string {
	if length < 0 {
		length = 0
	}
	if length > len(b) {
		length = len(b)
	}
	return string(b[:length])
}
