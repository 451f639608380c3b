// Package cuesheet parses scripted shows: plain text files listing, per line,
// a timestamp, a mood label, an energy level, and an optional beat marker.
// Cue sheets make a full director run reproducible without any audio input.
//
// Format, one cue per line ('#' starts a comment):
//
//	0.0        silence     0.0
//	00:05.000  building    0.4   beat
//	1:02:03.5  aggressive  0.85
package cuesheet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"lumen/internal/audio"
)

// Cue is one scripted step of the show.
type Cue struct {
	At     float64 // seconds from show start
	Mood   audio.Mood
	Energy float64
	Beat   bool // fire a beat on the first tick at or after At
}

// Sheet is an immutable, time-sorted cue list.
type Sheet struct {
	cues []Cue
}

// ParseFile reads a cue sheet from disk.
func ParseFile(path string) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue sheet: %w", err)
	}
	defer file.Close()
	sheet, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// Parse reads a cue sheet. At least one cue is required.
func Parse(r io.Reader) (*Sheet, error) {
	var cues []Cue
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || len(fields) > 4 {
			return nil, fmt.Errorf("line %d: want TIME MOOD ENERGY [beat], got %d fields", lineNo, len(fields))
		}

		at, err := parseTimestamp(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		energy, err := strconv.ParseFloat(fields[2], 64)
		if err != nil || energy < 0 || energy > 1 {
			return nil, fmt.Errorf("line %d: energy %q must be a number in [0,1]", lineNo, fields[2])
		}
		cue := Cue{
			At:     at,
			Mood:   audio.ParseMood(fields[1]),
			Energy: energy,
		}
		if len(fields) == 4 {
			if !strings.EqualFold(fields[3], "beat") {
				return nil, fmt.Errorf("line %d: unknown marker %q", lineNo, fields[3])
			}
			cue.Beat = true
		}
		cues = append(cues, cue)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("cue sheet has no cues")
	}

	sort.SliceStable(cues, func(i, j int) bool { return cues[i].At < cues[j].At })
	return &Sheet{cues: cues}, nil
}

// Len returns the cue count.
func (s *Sheet) Len() int { return len(s.cues) }

// Duration returns the timestamp of the last cue.
func (s *Sheet) Duration() float64 {
	return s.cues[len(s.cues)-1].At
}

// Cues returns the sorted cue list.
func (s *Sheet) Cues() []Cue {
	out := make([]Cue, len(s.cues))
	copy(out, s.cues)
	return out
}

// Cursor walks a sheet tick by tick, firing each cue's beat exactly once.
type Cursor struct {
	sheet  *Sheet
	next   int
	mood   audio.Mood
	energy float64
}

// Cursor starts a fresh walk. Before the first cue the show is silent.
func (s *Sheet) Cursor() *Cursor {
	return &Cursor{sheet: s, mood: audio.MoodSilence}
}

// Sample advances the cursor to time t and returns the active mood and
// energy. Beat is true only on the tick that first crosses a beat cue.
func (c *Cursor) Sample(t float64) (audio.Mood, float64, bool) {
	beat := false
	for c.next < len(c.sheet.cues) && c.sheet.cues[c.next].At <= t {
		cue := c.sheet.cues[c.next]
		c.mood = cue.Mood
		c.energy = cue.Energy
		beat = beat || cue.Beat
		c.next++
	}
	return c.mood, c.energy, beat
}

// parseTimestamp converts plain seconds ("12.5"), MM:SS(.mmm), or
// HH:MM:SS(.mmm) into seconds.
func parseTimestamp(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if !strings.Contains(ts, ":") {
		sec, err := strconv.ParseFloat(ts, 64)
		if err != nil || sec < 0 {
			return 0, fmt.Errorf("bad timestamp %q", ts)
		}
		return sec, nil
	}

	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("bad time %q; use MM:SS.mmm or HH:MM:SS.mmm", ts)
	}
	var hours float64
	if len(parts) == 3 {
		h, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || h < 0 {
			return 0, fmt.Errorf("bad hours in %q", ts)
		}
		hours = h
		parts = parts[1:]
	}
	minutes, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("bad minutes in %q", ts)
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("bad seconds in %q", ts)
	}
	return (hours*60+minutes)*60 + seconds, nil
}
