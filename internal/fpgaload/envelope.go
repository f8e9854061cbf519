package fpgaload

import (
	"bytes"
	"encoding/binary"
)

// envelopeMagic is the platform-specific wrapper's identifying prefix.
const envelopeMagic = "MiSTer"

// StripEnvelope recognizes and strips the optional wrapper around a raw
// configuration bitstream: if the first six bytes equal "MiSTer", the
// little-endian length at offset 12 gives the payload length and the
// payload starts at offset 16; otherwise the whole input is the payload.
func StripEnvelope(raw []byte) []byte {
	if len(raw) < 16 || !bytes.Equal(raw[:6], []byte(envelopeMagic)) {
		return raw
	}
	length := binary.LittleEndian.Uint32(raw[12:16])
	end := 16 + int(length)
	if end > len(raw) {
		end = len(raw)
	}
	return raw[16:end]
}
