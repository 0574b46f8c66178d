package util

// Big-endian byte helpers for the column page codecs. Page encodings are
// big-endian on the wire.

// WriteUB2 appends a 2-byte big-endian unsigned value to buf
func WriteUB2(buf []byte, i uint16) []byte {
	buf = append(buf, byte((i>>8)&0xFF))
	buf = append(buf, byte(i&0xFF))
	return buf
}

// WriteUB4 appends a 4-byte big-endian unsigned value to buf
func WriteUB4(buf []byte, i uint32) []byte {
	buf = append(buf, byte((i>>24)&0xFF))
	buf = append(buf, byte((i>>16)&0xFF))
	buf = append(buf, byte((i>>8)&0xFF))
	buf = append(buf, byte(i&0xFF))
	return buf
}

// SetUB2 writes a 2-byte big-endian unsigned value at offset
func SetUB2(buf []byte, offset int, i uint16) {
	buf[offset] = byte((i >> 8) & 0xFF)
	buf[offset+1] = byte(i & 0xFF)
}

// SetUB4 writes a 4-byte big-endian unsigned value at offset
func SetUB4(buf []byte, offset int, i uint32) {
	buf[offset] = byte((i >> 24) & 0xFF)
	buf[offset+1] = byte((i >> 16) & 0xFF)
	buf[offset+2] = byte((i >> 8) & 0xFF)
	buf[offset+3] = byte(i & 0xFF)
}

// ReadUB2 reads a 2-byte big-endian unsigned value at cursor and returns the
// advanced cursor
func ReadUB2(buff []byte, cursor int) (int, uint16) {
	i := uint16(buff[cursor]) << 8
	i |= uint16(buff[cursor+1])
	return cursor + 2, i
}

// ReadUB4 reads a 4-byte big-endian unsigned value at cursor and returns the
// advanced cursor
func ReadUB4(buff []byte, cursor int) (int, uint32) {
	i := uint32(buff[cursor]) << 24
	i |= uint32(buff[cursor+1]) << 16
	i |= uint32(buff[cursor+2]) << 8
	i |= uint32(buff[cursor+3])
	return cursor + 4, i
}

// ReadBytes returns offset bytes starting at cursor and the advanced cursor
func ReadBytes(buff []byte, cursor int, offset int) (int, []byte) {
	if offset <= 0 {
		return cursor, nil
	}
	return cursor + offset, buff[cursor : cursor+offset]
}
