package transcode

import "encoding/binary"

// bytesToSamples reinterprets little-endian PCM bytes as int16 samples.
// A trailing odd byte is dropped.
func bytesToSamples(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}
	return samples
}

// samplesToBytes serializes int16 samples as little-endian PCM bytes.
func samplesToBytes(samples []int16) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:i*2+2], uint16(s))
	}
	return pcm
}

// remix converts interleaved samples between channel counts. Downmixing
// averages the channels, upmixing duplicates the mono channel.
func remix(samples []int16, from, to int) []int16 {
	if from == to {
		return samples
	}

	frames := len(samples) / from
	out := make([]int16, 0, frames*to)

	for f := 0; f < frames; f++ {
		if to == 1 {
			sum := 0
			for ch := 0; ch < from; ch++ {
				sum += int(samples[f*from+ch])
			}
			out = append(out, int16(sum/from))
		} else {
			mono := samples[f*from]
			for ch := 0; ch < to; ch++ {
				out = append(out, mono)
			}
		}
	}

	return out
}

// resample converts interleaved samples between sample rates using linear
// interpolation per channel.
func resample(samples []int16, channels, from, to int) []int16 {
	if from == to || len(samples) == 0 {
		return samples
	}

	inFrames := len(samples) / channels
	outFrames := int(int64(inFrames) * int64(to) / int64(from))
	if outFrames == 0 {
		outFrames = 1
	}
	out := make([]int16, outFrames*channels)

	for f := 0; f < outFrames; f++ {
		// Position of this output frame on the input timeline.
		pos := float64(f) * float64(inFrames-1) / float64(maxInt(outFrames-1, 1))
		i0 := int(pos)
		i1 := i0 + 1
		if i1 >= inFrames {
			i1 = inFrames - 1
		}
		frac := pos - float64(i0)

		for ch := 0; ch < channels; ch++ {
			s0 := float64(samples[i0*channels+ch])
			s1 := float64(samples[i1*channels+ch])
			out[f*channels+ch] = int16(s0 + (s1-s0)*frac)
		}
	}

	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
