// Package transcode converts captured audio into the canonical PCM form
// required by the transcription service.
package transcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// wavHeader is the standard 44-byte RIFF/WAVE header. The layout must be
// bit-reproducible: format tag 1 (PCM), 16-bit depth, little-endian.
type wavHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // file size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

// WAVInfo is the decoded parameter set of a PCM WAV payload.
type WAVInfo struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// EncodeWAV wraps interleaved 16-bit little-endian PCM samples in a WAV
// container with the canonical 44-byte header.
func EncodeWAV(pcm []byte, sampleRate, channels int) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio data")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("channel count must be positive, got %d", channels)
	}

	bitsPerSample := uint16(16)
	blockAlign := uint16(channels) * bitsPerSample / 8
	dataSize := uint32(len(pcm))

	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	buf.Write(pcm)

	return buf.Bytes(), nil
}

// DecodeWAV parses a PCM WAV payload and returns its parameters and raw
// sample data. Extra metadata chunks between "fmt " and "data" (browsers
// insert them) are skipped.
func DecodeWAV(data []byte) (WAVInfo, []byte, error) {
	var info WAVInfo

	if len(data) < 44 {
		return info, nil, fmt.Errorf("payload too short for a WAV header: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return info, nil, fmt.Errorf("not a RIFF/WAVE container")
	}

	var pcm []byte
	haveFmt := false

	// Walk the subchunks after the 12-byte RIFF preamble.
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return info, nil, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			if audioFormat != 1 {
				return info, nil, fmt.Errorf("unsupported audio format tag %d, want PCM", audioFormat)
			}
			info.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			pcm = data[body : body+chunkSize]
		}

		// Chunks are word-aligned.
		if chunkSize%2 == 1 {
			chunkSize++
		}
		offset = body + chunkSize
	}

	if !haveFmt {
		return info, nil, fmt.Errorf("missing fmt chunk")
	}
	if pcm == nil {
		return info, nil, fmt.Errorf("missing data chunk")
	}
	if info.BitsPerSample != 16 {
		return info, nil, fmt.Errorf("unsupported bit depth %d, want 16", info.BitsPerSample)
	}
	if info.Channels <= 0 {
		return info, nil, fmt.Errorf("invalid channel count %d", info.Channels)
	}

	return info, pcm, nil
}
