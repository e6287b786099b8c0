package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// paragraphTerminator ends a Paragraph answer.
const paragraphTerminator = "."

// TextPrompter implements Prompter, Confirmer and Chooser over line-based IO.
type TextPrompter struct {
	reader *bufio.Reader
	out    *termenv.Output
	// echo repeats every accepted answer when input is not a terminal, so piped sessions
	// leave a readable transcript.
	echo bool

	lines     chan lineResult
	startOnce sync.Once
}

type lineResult struct {
	text string
	err  error
}

// TextOption configures a TextPrompter.
type TextOption func(*TextPrompter)

// WithColor forces (true) or disables (false) ANSI styling.
func WithColor(enabled bool) TextOption {
	return func(p *TextPrompter) {
		profile := termenv.Ascii
		if enabled {
			profile = termenv.ANSI256
		}
		p.out = termenv.NewOutput(p.out.Writer(), termenv.WithProfile(profile))
	}
}

// WithEcho overrides the transcript echo decided from the input stream.
func WithEcho(enabled bool) TextOption {
	return func(p *TextPrompter) {
		p.echo = enabled
	}
}

// NewText creates a prompter reading r and writing prompts to w.
func NewText(r io.Reader, w io.Writer, opts ...TextOption) *TextPrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	p := &TextPrompter{
		reader: bufio.NewReader(r),
		out:    termenv.NewOutput(w),
		echo:   !isTerminal(r),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *TextPrompter) initPump() {
	p.startOnce.Do(func() {
		p.lines = make(chan lineResult)
		go p.pump()
	})
}

func (p *TextPrompter) pump() {
	for {
		text, err := p.reader.ReadString('\n')
		if text != "" {
			p.lines <- lineResult{text: strings.TrimRight(text, "\r\n")}
		}
		if err != nil {
			if err != io.EOF {
				p.lines <- lineResult{err: err}
			}
			close(p.lines)
			return
		}
	}
}

// readLine blocks for the next line; EOF and context cancellation map to ErrCanceled.
func (p *TextPrompter) readLine(ctx context.Context) (string, error) {
	p.initPump()
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	case res, ok := <-p.lines:
		if !ok {
			return "", ErrCanceled
		}
		if res.err != nil {
			return "", res.err
		}
		return res.text, nil
	}
}

func (p *TextPrompter) header(message, help string) {
	mark := p.out.String("?").Foreground(p.out.Color("2")).Bold()
	fmt.Fprintf(p.out, "%s %s", mark, p.out.String(message).Bold())
	if help != "" {
		fmt.Fprintf(p.out, " %s", p.out.String("("+help+")").Faint())
	}
	fmt.Fprintln(p.out)
}

func (p *TextPrompter) caret() {
	fmt.Fprint(p.out, "> ")
}

func (p *TextPrompter) retry(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.out, "%s\n", p.out.String("Error: "+msg+". Please try again.").Foreground(p.out.Color("1")))
}

func (p *TextPrompter) accepted(value string) {
	if p.echo {
		fmt.Fprintln(p.out, value)
	}
}

// Ask dispatches on the question type.
func (p *TextPrompter) Ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	var (
		ans domain.Answer
		err error
	)
	switch q.Type {
	case domain.QuestionText:
		var s string
		s, err = p.askText(ctx, q.ID, q.Help, true)
		ans = domain.StringAnswer(s)
	case domain.QuestionParagraph:
		var s string
		s, err = p.askParagraph(ctx, q)
		ans = domain.StringAnswer(s)
	case domain.QuestionConfirm:
		var b bool
		b, err = p.askConfirm(ctx, q.ID, q.Help, nil)
		ans = domain.BoolAnswer(b)
	case domain.QuestionSelect:
		var s string
		s, err = p.askSelect(ctx, q.ID, q.Help, q.Choices)
		ans = domain.StringAnswer(s)
	case domain.QuestionMultiSelect:
		var items []string
		items, err = p.askMultiSelect(ctx, q)
		ans = domain.ArrayAnswer(items)
	default:
		err = fmt.Errorf("unsupported question type %q", q.Type)
	}
	if err != nil {
		return domain.Answer{}, err
	}
	return ans, nil
}

// Confirm asks a yes/no question where an empty answer means no.
func (p *TextPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	no := false
	return p.askConfirm(ctx, message, "y/N", &no)
}

// Choose asks for one item of choices.
func (p *TextPrompter) Choose(ctx context.Context, message string, choices []string) (string, error) {
	return p.askSelect(ctx, message, "", choices)
}

// Input asks for a required single line.
func (p *TextPrompter) Input(ctx context.Context, message string) (string, error) {
	return p.askText(ctx, message, "", true)
}

func (p *TextPrompter) askText(ctx context.Context, message, help string, required bool) (string, error) {
	p.header(message, help)
	for {
		p.caret()
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		value := strings.TrimSpace(line)
		if required && value == "" {
			p.retry("%s is required", message)
			continue
		}
		p.accepted(value)
		return value, nil
	}
}

func (p *TextPrompter) askParagraph(ctx context.Context, q domain.Question) (string, error) {
	help := "finish with a line containing only '" + paragraphTerminator + "'"
	if q.Help != "" {
		help = q.Help + "; " + help
	}
	p.header(q.ID, help)

	var lines []string
	for {
		line, err := p.readLine(ctx)
		if err == ErrCanceled && len(lines) > 0 {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == paragraphTerminator {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// parseBool accepts the usual yes/no spellings.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true, true
	case "n", "no", "false", "0":
		return false, true
	}
	return false, false
}

func (p *TextPrompter) askConfirm(ctx context.Context, message, help string, def *bool) (bool, error) {
	if help == "" {
		help = "y/n"
	} else if def == nil {
		help += ", y/n"
	}
	p.header(message, help)
	for {
		p.caret()
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(line) == "" && def != nil {
			p.accepted(strconv.FormatBool(*def))
			return *def, nil
		}
		value, ok := parseBool(line)
		if !ok {
			p.retry("invalid confirmation '%s' (expected y/n/yes/no)", strings.TrimSpace(line))
			continue
		}
		p.accepted(strconv.FormatBool(value))
		return value, nil
	}
}

func (p *TextPrompter) listChoices(choices []string) {
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %s %s\n", p.out.String(strconv.Itoa(i+1)+")").Faint(), c)
	}
}

// resolveChoice maps a 1-based index or an exact choice to the choice.
func resolveChoice(token string, choices []string) (string, bool) {
	token = strings.TrimSpace(token)
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], true
	}
	if slices.Contains(choices, token) {
		return token, true
	}
	return "", false
}

func (p *TextPrompter) askSelect(ctx context.Context, message, help string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no choices for '%s'", message)
	}
	p.header(message, help)
	p.listChoices(choices)
	for {
		p.caret()
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		choice, ok := resolveChoice(line, choices)
		if !ok {
			p.retry("'%s' is not one of the choices", strings.TrimSpace(line))
			continue
		}
		p.accepted(choice)
		return choice, nil
	}
}

func (p *TextPrompter) askMultiSelect(ctx context.Context, q domain.Question) ([]string, error) {
	help := "comma separated"
	if q.Help != "" {
		help = q.Help + "; " + help
	}
	p.header(q.ID, help)
	p.listChoices(q.Choices)
	for {
		p.caret()
		line, err := p.readLine(ctx)
		if err != nil {
			return nil, err
		}
		selected, bad := splitSelection(line, q.Choices)
		if bad != "" {
			p.retry("'%s' is not one of the choices", bad)
			continue
		}
		if len(selected) == 0 {
			p.retry("select at least one option")
			continue
		}
		p.accepted(strings.Join(selected, ", "))
		return selected, nil
	}
}

// splitSelection resolves every token of line, keeping choice order and dropping repeats.
// It returns the first unknown token, if any.
func splitSelection(line string, choices []string) ([]string, string) {
	picked := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' }) {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		choice, ok := resolveChoice(tok, choices)
		if !ok {
			return nil, strings.TrimSpace(tok)
		}
		picked[choice] = true
	}
	var selected []string
	for _, c := range choices {
		if picked[c] {
			selected = append(selected, c)
		}
	}
	return selected, ""
}
