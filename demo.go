package main

import "fmt"

var demoScale = []int{0, 2, 3, 5, 7, 8, 10}

// DemoSong builds a deterministic song so the editors have something to
// show without loading a project.
func DemoSong(tracks, bars, beatsPerBar, ticksPerBeat int) *Song {
	song := make([]Track, 0, tracks)
	for t := range tracks {
		track := Track{Name: fmt.Sprintf("Track %d", t+1)}
		root := 36 + 12*(t%4)
		beats := bars * beatsPerBar
		for b := range beats {
			if (b+t)%(t%3+2) == 0 {
				continue
			}
			degree := (b*3 + t*5) % len(demoScale)
			duration := ticksPerBeat / 2
			if b%beatsPerBar == 0 {
				duration = ticksPerBeat
			}
			track.Notes = append(track.Notes, Note{
				Tick:     b * ticksPerBeat,
				Duration: duration,
				Pitch:    root + demoScale[degree] + 12*(b%2),
				Velocity: 40 + (b*13+t*29)%88,
			})
		}
		song = append(song, track)
	}
	return NewSong(ticksPerBeat, song)
}
