package sched

import (
	"fmt"
	"strings"
)

// PriorityLevel classifies a task for scheduling purposes. The set is
// closed and totally ordered: High > Medium > Low. Higher levels always
// leave the queue before lower ones.
type PriorityLevel int

const (
	Low PriorityLevel = iota
	Medium
	High
)

func (p PriorityLevel) String() string {
	switch p {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name (as it appears in config files) back
// into a PriorityLevel.
func ParseLevel(s string) (PriorityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return High, nil
	case "medium":
		return Medium, nil
	case "low":
		return Low, nil
	default:
		return Low, fmt.Errorf("sched: unknown priority level %q", s)
	}
}

// MarshalYAML lets seed tasks in config.yml name their level.
func (p PriorityLevel) MarshalYAML() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PriorityLevel) UnmarshalYAML(b []byte) error {
	lvl, err := ParseLevel(strings.Trim(string(b), `"'`))
	if err != nil {
		return err
	}
	*p = lvl
	return nil
}
