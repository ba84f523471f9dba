// Package beep plays short audio cues around playback: one tick when typing
// starts, one when it completes, a low double-beep on error.
package beep

import "math"

var muted bool

func Mute() { muted = true }

const (
	sampleRate = 44100

	// Start cue: high pitch, very short
	startFreq   = 1320
	startVolume = 0.4
	startDecay  = 70

	// Done cue: medium pitch
	doneFreq   = 880
	doneVolume = 0.4
	doneDecay  = 45

	// Error cue: low pitch double-beep
	errorFreq   = 330
	errorVolume = 0.55
	errorDecay  = 30
)

// tone renders a mono sine burst with an exponential decay envelope.
func tone(freq, duration, volume, decay float64) []int16 {
	n := int(sampleRate * duration)
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

func doubleTone(freq, beepDur, gapDur, volume, decay float64) []int16 {
	burst := tone(freq, beepDur, volume, decay)
	gap := make([]int16, int(sampleRate*gapDur))
	out := make([]int16, 0, len(burst)*2+len(gap))
	out = append(out, burst...)
	out = append(out, gap...)
	out = append(out, burst...)
	return out
}
