// Package notes builds the note sequence that plays when rings are destroyed.
package notes

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/vovakirdan/chaos-rings/internal/sim"
)

// defaultVelocity is used for the fallback scale.
const defaultVelocity = 80

// cMajor is the fallback sequence for files without any note-on events.
var cMajor = []uint8{60, 62, 64, 65, 67, 69, 71, 72}

// Frequency converts a MIDI note number to Hz, A4 = 440.
func Frequency(key uint8) float64 {
	return 440 * math.Pow(2, (float64(key)-69)/12)
}

// Default returns one octave of C major.
func Default() []sim.Note {
	out := make([]sim.Note, 0, len(cMajor))
	for _, k := range cMajor {
		out = append(out, sim.Note{Key: k, Velocity: defaultVelocity, Frequency: Frequency(k)})
	}
	return out
}

// Load reads a Standard MIDI File and returns every note-on event, track by
// track, in file order. Timing is ignored. A file with no notes yields the
// default scale.
func Load(r io.Reader) ([]sim.Note, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("notes: failed to read midi: %w", err)
	}

	var out []sim.Note
	for _, track := range s.Tracks {
		for _, ev := range track {
			var ch, key, vel uint8
			if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				out = append(out, sim.Note{Key: key, Velocity: vel, Frequency: Frequency(key)})
			}
		}
	}

	if len(out) == 0 {
		return Default(), nil
	}
	return out, nil
}

// LoadFile reads notes from a MIDI file on disk.
func LoadFile(path string) ([]sim.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("notes: failed to open %s: %w", path, err)
	}
	return Load(bytes.NewReader(data))
}
