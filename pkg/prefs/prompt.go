package prefs

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Source provides preference values from an external collaborator,
// typically a terminal prompt. Tests substitute a canned source.
type Source interface {
	// Collect gathers a complete preference record
	Collect() (*Preferences, error)
}

// TerminalSource collects preferences interactively by prompting on a
// terminal
type TerminalSource struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalSource creates a terminal prompt source reading from in
// and writing prompts to out
func NewTerminalSource(in io.Reader, out io.Writer) *TerminalSource {
	return &TerminalSource{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Collect prompts for the source and destination directories
func (s *TerminalSource) Collect() (*Preferences, error) {
	source, err := s.ask("Source directory (where samples are downloaded): ")
	if err != nil {
		return nil, err
	}

	dest, err := s.ask("Destination directory (sample library root): ")
	if err != nil {
		return nil, err
	}

	p := &Preferences{
		SourceDir:      source,
		DestinationDir: dest,
	}

	if !p.Complete() {
		return nil, fmt.Errorf("both source and destination directories are required")
	}

	return p, nil
}

func (s *TerminalSource) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// CreateInteractive collects a preference record from the source and
// persists it at path
func CreateInteractive(src Source, path string) (*Preferences, error) {
	p, err := src.Collect()
	if err != nil {
		return nil, err
	}

	if err := Save(p, path); err != nil {
		return nil, err
	}

	return p, nil
}
