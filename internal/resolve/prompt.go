package resolve

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/vanshika/degrees/internal/domain"
)

// Prompt asks a human to pick among people sharing a name. On a terminal it
// shows a select list, otherwise it prints the candidates and reads an id
// from In.
type Prompt struct {
	In          *bufio.Reader
	Out         io.Writer
	Interactive bool
}

// NewPrompt builds a Prompt over in and out, enabling the select list when
// in is a terminal.
func NewPrompt(in *os.File, reader *bufio.Reader, out io.Writer) *Prompt {
	fd := in.Fd()
	return &Prompt{
		In:          reader,
		Out:         out,
		Interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func (p *Prompt) Choose(ctx context.Context, name string, candidates []domain.PersonSummary) (string, error) {
	if p.Interactive {
		return p.choose(ctx, name, candidates)
	}

	fmt.Fprintf(p.Out, "Which '%s'?\n", name)
	for _, c := range candidates {
		fmt.Fprintf(p.Out, "ID: %s, Name: %s, Birth: %s\n", c.ID, c.Name, c.Birth)
	}
	fmt.Fprint(p.Out, "Intended Person ID: ")

	line, err := p.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read selection: %w", err)
	}
	id := strings.TrimSpace(line)
	if id == "" {
		return "", ErrNoSelection
	}
	return id, nil
}

func (p *Prompt) choose(ctx context.Context, name string, candidates []domain.PersonSummary) (string, error) {
	options := make([]huh.Option[string], 0, len(candidates))
	for _, c := range candidates {
		label := fmt.Sprintf("%s (born %s, %d movies) [%s]", c.Name, orUnknown(c.Birth), c.MovieCount, c.ID)
		options = append(options, huh.NewOption(label, c.ID))
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("Which '%s'?", name)).
			Options(options...).
			Value(&selected),
	))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("select person: %w", err)
	}
	return selected, nil
}

// AskName reads a name, through an input field on a terminal or a plain
// "Name: " prompt otherwise.
func (p *Prompt) AskName(ctx context.Context, title string) (string, error) {
	if p.Interactive {
		var name string
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title(title).Value(&name),
		)).RunWithContext(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", ErrNoSelection
			}
			return "", fmt.Errorf("read name: %w", err)
		}
		return strings.TrimSpace(name), nil
	}

	fmt.Fprint(p.Out, "Name: ")
	line, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read name: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
