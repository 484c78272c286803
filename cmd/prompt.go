package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellnest/internal/question"
)

// prompter asks questions on the command's stdin and stdout.
type prompter struct {
	in  *bufio.Reader
	out io.Writer

	// fixed answers every question with this option index when >= 0.
	fixed  int
	cancel context.CancelFunc
}

func newPrompter(cmd *cobra.Command, cancel context.CancelFunc) *prompter {
	fixed, err := cmd.Flags().GetInt("answer")
	if err != nil {
		fixed = -1
	}
	return &prompter{
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		fixed:  fixed,
		cancel: cancel,
	}
}

// line prints label and reads one trimmed line. io.EOF is returned only
// when nothing was read.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	s = strings.TrimSpace(s)
	if err == io.EOF && s != "" {
		err = nil
	}
	return s, err
}

// choose shows q and reads an option number. "q" or end of input
// cancels the flow.
func (p *prompter) choose(i int, q question.Question) int {
	if p.fixed >= 0 {
		return min(p.fixed, len(q.Options)-1)
	}

	fmt.Fprintf(p.out, "\n%d. %s\n", i+1, q.Text)
	for j, o := range q.Options {
		fmt.Fprintf(p.out, "   %d) %s\n", j+1, o.Label)
	}
	for {
		s, err := p.line("> ")
		if err != nil || strings.EqualFold(s, "q") {
			p.cancel()
			return -1
		}
		if n, convErr := strconv.Atoi(s); convErr == nil && n >= 1 && n <= len(q.Options) {
			return n - 1
		}
		fmt.Fprintf(p.out, "Enter a number from 1 to %d, or q to quit.\n", len(q.Options))
	}
}
