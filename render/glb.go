package render

import (
	"encoding/binary"
	"fmt"
)

// GLB binary container constants (glTF 2.0).
const (
	glbMagic     = 0x46546C67 // "glTF"
	glbVersion   = 2
	glbHeaderLen = 12
	glbChunkJSON = 0x4E4F534A // "JSON"
)

// ProbeGLB validates that payload is a well-formed GLB container: correct
// magic, version 2, a declared length matching the payload, and a leading
// JSON chunk. It does not decode the scene; full decoding belongs to the
// graphics layer. All failures wrap [ErrParse].
func ProbeGLB(payload []byte) error {
	if len(payload) < glbHeaderLen {
		return fmt.Errorf("%w: payload shorter than GLB header (%d bytes)", ErrParse, len(payload))
	}
	if magic := binary.LittleEndian.Uint32(payload[0:4]); magic != glbMagic {
		return fmt.Errorf("%w: bad magic 0x%08x", ErrParse, magic)
	}
	if version := binary.LittleEndian.Uint32(payload[4:8]); version != glbVersion {
		return fmt.Errorf("%w: unsupported GLB version %d", ErrParse, version)
	}
	length := binary.LittleEndian.Uint32(payload[8:12])
	if int(length) != len(payload) {
		return fmt.Errorf("%w: declared length %d, payload %d bytes", ErrParse, length, len(payload))
	}
	if len(payload) < glbHeaderLen+8 {
		return fmt.Errorf("%w: missing chunk header", ErrParse)
	}
	chunkLen := binary.LittleEndian.Uint32(payload[12:16])
	chunkType := binary.LittleEndian.Uint32(payload[16:20])
	if chunkType != glbChunkJSON {
		return fmt.Errorf("%w: first chunk type 0x%08x, want JSON", ErrParse, chunkType)
	}
	if glbHeaderLen+8+int(chunkLen) > len(payload) {
		return fmt.Errorf("%w: JSON chunk length %d exceeds payload", ErrParse, chunkLen)
	}
	return nil
}

// ProbeRenderer returns a Renderer that only validates the GLB container.
// It stands in for a real graphics backend in headless contexts.
func ProbeRenderer() Renderer {
	return Func(ProbeGLB)
}
