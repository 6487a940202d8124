package transcode

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// sine-free deterministic PCM: a short ramp, interleaved per channel.
func makePCM(frames, channels int) []byte {
	samples := make([]int16, frames*channels)
	for f := 0; f < frames; f++ {
		for ch := 0; ch < channels; ch++ {
			samples[f*channels+ch] = int16(f * 100)
		}
	}
	return samplesToBytes(samples)
}

func TestEncodeWAVHeaderLayout(t *testing.T) {
	pcm := makePCM(100, 1)
	wav, err := EncodeWAV(pcm, 16000, 1)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	if len(wav) != 44+len(pcm) {
		t.Fatalf("Expected %d bytes, got %d", 44+len(pcm), len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("Missing RIFF/WAVE tags")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		t.Error("Missing fmt/data chunk tags")
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("Expected chunk size %d, got %d", 36+len(pcm), got)
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Errorf("Expected PCM format tag 1, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 16000 {
		t.Errorf("Expected sample rate 16000, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("Expected 16 bits per sample, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("Expected data size %d, got %d", len(pcm), got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		rate     int
		channels int
	}{
		{8000, 1},
		{16000, 1},
		{48000, 2},
	}

	for _, c := range cases {
		pcm := makePCM(64, c.channels)
		wav, err := EncodeWAV(pcm, c.rate, c.channels)
		if err != nil {
			t.Fatalf("EncodeWAV(%d,%d) failed: %v", c.rate, c.channels, err)
		}

		info, data, err := DecodeWAV(wav)
		if err != nil {
			t.Fatalf("DecodeWAV failed: %v", err)
		}
		if info.SampleRate != c.rate {
			t.Errorf("Expected sample rate %d, got %d", c.rate, info.SampleRate)
		}
		if info.Channels != c.channels {
			t.Errorf("Expected %d channels, got %d", c.channels, info.Channels)
		}
		if info.BitsPerSample != 16 {
			t.Errorf("Expected 16 bits per sample, got %d", info.BitsPerSample)
		}
		if !bytes.Equal(data, pcm) {
			t.Error("Decoded PCM does not match the encoded input")
		}
	}
}

func TestEncodeWAVRejectsBadInput(t *testing.T) {
	if _, err := EncodeWAV(nil, 16000, 1); err == nil {
		t.Error("Expected error for empty PCM data")
	}
	if _, err := EncodeWAV([]byte{1, 2}, 0, 1); err == nil {
		t.Error("Expected error for zero sample rate")
	}
	if _, err := EncodeWAV([]byte{1, 2}, 16000, 0); err == nil {
		t.Error("Expected error for zero channel count")
	}
}

func TestDecodeWAVSkipsMetadataChunks(t *testing.T) {
	pcm := makePCM(32, 1)
	wav, err := EncodeWAV(pcm, 16000, 1)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	// Splice a LIST chunk between "fmt " and "data", the way browser
	// recorders do.
	list := []byte("LIST")
	list = append(list, 0x04, 0x00, 0x00, 0x00)
	list = append(list, 'I', 'N', 'F', 'O')

	spliced := make([]byte, 0, len(wav)+len(list))
	spliced = append(spliced, wav[:36]...)
	spliced = append(spliced, list...)
	spliced = append(spliced, wav[36:]...)
	binary.LittleEndian.PutUint32(spliced[4:8], uint32(len(spliced)-8))

	info, data, err := DecodeWAV(spliced)
	if err != nil {
		t.Fatalf("DecodeWAV with LIST chunk failed: %v", err)
	}
	if info.SampleRate != 16000 || info.Channels != 1 {
		t.Errorf("Unexpected info after metadata skip: %+v", info)
	}
	if !bytes.Equal(data, pcm) {
		t.Error("PCM corrupted by metadata chunk skip")
	}
}

func TestDecodeWAVRejectsMalformedPayloads(t *testing.T) {
	if _, _, err := DecodeWAV([]byte("short")); err == nil {
		t.Error("Expected error for short payload")
	}

	notRIFF := make([]byte, 64)
	if _, _, err := DecodeWAV(notRIFF); err == nil {
		t.Error("Expected error for non-RIFF payload")
	}

	pcm := makePCM(16, 1)
	wav, _ := EncodeWAV(pcm, 16000, 1)
	// Flip the format tag to 3 (IEEE float).
	binary.LittleEndian.PutUint16(wav[20:22], 3)
	if _, _, err := DecodeWAV(wav); err == nil {
		t.Error("Expected error for non-PCM format tag")
	}
}
