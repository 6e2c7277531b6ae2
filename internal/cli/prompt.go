package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers line by line. A pending read is abandoned when ctx
// is done, so an interrupt does not wait for the user to press Enter.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), out: out}
}

type lineResult struct {
	line string
	err  error
}

// ask prints prompt and returns the trimmed answer.
func (p *prompter) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.r.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
			return "", fmt.Errorf("read input: %w", res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}
