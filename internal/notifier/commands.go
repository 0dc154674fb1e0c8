package notifier

import (
	"context"
	"html"
	"strings"
)

// Command is one bot command. Handle gets the words after the command name
// and returns the reply; an empty reply sends nothing.
type Command struct {
	Name   string // "/sip"
	Args   string // "<amount>", shown in the help
	About  string
	Handle func(ctx context.Context, args []string) string
}

// Router maps chat messages to commands.
type Router struct {
	cmds  map[string]Command
	order []string
}

// NewRouter registers cmds in help order.
func NewRouter(cmds ...Command) *Router {
	r := &Router{cmds: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		name := strings.ToLower(c.Name)
		if _, dup := r.cmds[name]; !dup {
			r.order = append(r.order, name)
		}
		r.cmds[name] = c
	}
	return r
}

// Help lists the registered commands.
func (r *Router) Help() string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, name := range r.order {
		c := r.cmds[name]
		b.WriteString("\n• " + c.Name)
		if c.Args != "" {
			b.WriteString(" " + html.EscapeString(c.Args))
		}
		b.WriteString(" - " + c.About)
	}
	return b.String()
}

// Dispatch runs the command in text. Plain chatter gets no reply and an
// unknown command gets the help.
func (r *Router) Dispatch(ctx context.Context, text string) string {
	name, args, ok := parseCommand(text)
	if !ok {
		return ""
	}
	c, found := r.cmds[name]
	if !found {
		return r.Help()
	}
	return c.Handle(ctx, args)
}

// parseCommand splits "/sip@SipBot 5000" into "/sip" and ["5000"].
func parseCommand(text string) (string, []string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(name), fields[1:], true
}
