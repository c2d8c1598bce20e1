// Package tooltest provides a scripted tool.Runner for tests.
package tooltest

import (
	"context"
	"sync"

	"github.com/example/rscrot/internal/tool"
)

// Response is the scripted result for one command name.
type Response struct {
	Stdout []byte
	Err    error
}

// Fake records every command and answers from Responses keyed by command name.
// Unknown commands succeed with empty output.
type Fake struct {
	mu        sync.Mutex
	Responses map[string][]Response
	Calls     []tool.Command
	Started   []tool.Command
}

var _ tool.Runner = (*Fake)(nil)

// On queues a response for the next invocation of name.
func (f *Fake) On(name string, stdout string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Responses == nil {
		f.Responses = make(map[string][]Response)
	}
	f.Responses[name] = append(f.Responses[name], Response{Stdout: []byte(stdout), Err: err})
	return f
}

func (f *Fake) next(c tool.Command) Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
	queue := f.Responses[c.Name]
	if len(queue) == 0 {
		return Response{}
	}
	f.Responses[c.Name] = queue[1:]
	return queue[0]
}

func (f *Fake) Output(_ context.Context, c tool.Command) ([]byte, error) {
	r := f.next(c)
	return r.Stdout, r.Err
}

func (f *Fake) Run(_ context.Context, c tool.Command) error {
	return f.next(c).Err
}

func (f *Fake) Start(c tool.Command) error {
	f.mu.Lock()
	f.Started = append(f.Started, c)
	f.mu.Unlock()
	return f.next(c).Err
}

// Names returns the program names invoked so far, in order.
func (f *Fake) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		names = append(names, c.Name)
	}
	return names
}
