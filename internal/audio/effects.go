package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Dotan232/SweetBarista/internal/games/barista"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves, optionally sliding in pitch.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding linearly from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is a silent stream
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a single shaped tone.
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

func sweep(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// recipes builds each named effect at full volume.
var recipes = map[string]func(rate beep.SampleRate) beep.Streamer{
	barista.SoundSugarDrop: func(rate beep.SampleRate) beep.Streamer {
		return sweep(900, 300, 120*time.Millisecond, WaveSine, rate)
	},
	barista.SoundSuccessHit: func(rate beep.SampleRate) beep.Streamer {
		// Bell: fundamental plus octave
		return beep.Mix(
			newVolume(note(880, 250*time.Millisecond, WaveSine, rate), 0.7),
			newVolume(note(1760, 150*time.Millisecond, WaveSine, rate), 0.3),
		)
	},
	barista.SoundSugarSplash: func(rate beep.SampleRate) beep.Streamer {
		return newVolume(note(0, 180*time.Millisecond, WaveNoise, rate), 0.5)
	},
	barista.SoundOverfill: func(rate beep.SampleRate) beep.Streamer {
		return newVolume(note(110, 300*time.Millisecond, WaveSaw, rate), 0.6)
	},
	barista.SoundTimeWarning: func(rate beep.SampleRate) beep.Streamer {
		return newVolume(beep.Seq(
			note(660, 100*time.Millisecond, WaveSquare, rate),
			beep.Silence(rate.N(80*time.Millisecond)),
			note(660, 100*time.Millisecond, WaveSquare, rate),
		), 0.4)
	},
	barista.SoundLevelComplete: func(rate beep.SampleRate) beep.Streamer {
		// C5 E5 G5 C6
		return beep.Seq(
			note(523.25, 120*time.Millisecond, WaveSine, rate),
			note(659.25, 120*time.Millisecond, WaveSine, rate),
			note(783.99, 120*time.Millisecond, WaveSine, rate),
			note(1046.5, 300*time.Millisecond, WaveSine, rate),
		)
	},
	barista.SoundLevelFail: func(rate beep.SampleRate) beep.Streamer {
		return newVolume(beep.Seq(
			note(392, 200*time.Millisecond, WaveSaw, rate),
			note(311.13, 200*time.Millisecond, WaveSaw, rate),
			sweep(261.63, 196, 400*time.Millisecond, WaveSaw, rate),
		), 0.5)
	},
}

// Effect returns the streamer for a named sound scaled by volume, or nil
// when the name is unknown.
func Effect(name string, volume float64, rate beep.SampleRate) beep.Streamer {
	build, ok := recipes[name]
	if !ok {
		return nil
	}
	return newVolume(build(rate), volume)
}

// Names lists every sound the package can play.
func Names() []string {
	return []string{
		barista.SoundSugarDrop,
		barista.SoundSuccessHit,
		barista.SoundSugarSplash,
		barista.SoundOverfill,
		barista.SoundTimeWarning,
		barista.SoundLevelComplete,
		barista.SoundLevelFail,
	}
}

// musicBar is one bar of a slow café arpeggio.
func musicBar(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(220, 400*time.Millisecond, WaveSine, rate),
		note(277.18, 400*time.Millisecond, WaveSine, rate),
		note(329.63, 400*time.Millisecond, WaveSine, rate),
		note(277.18, 400*time.Millisecond, WaveSine, rate),
	)
}

// musicLoop repeats musicBar forever.
func musicLoop(volume float64, rate beep.SampleRate) beep.Streamer {
	return newVolume(beep.Iterate(func() beep.Streamer {
		return musicBar(rate)
	}), volume*0.25)
}
