package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// access says in which session state a command is offered.
type access int

const (
	anyone access = iota
	anonymousOnly
	authenticated
)

// command is one REPL verb. args are the words after the verb.
type command struct {
	name   string
	usage  string
	access access
	run    func(ctx context.Context, args []string) error
}

// execIface is what the REPL needs from the application.
// The real App satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
	fail(ctx context.Context, err error)
}

// runREPL reads one command per line from in and dispatches it.
//
// The prompt shows statusFn(). "help" lists the commands offered in the
// current session state; "exit" and "quit" leave. Anonymous-only commands
// are refused while logged in. Authenticated commands always run: the
// session facade refuses them when no token is stored. Handler errors go to
// fail, which decides how to report them; the loop itself never stops on a
// failed command. The loop also returns on EOF.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pd %s> ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(a.commands(), a.isLoggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := lookup(a.commands(), name)
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if cmd.access == anonymousOnly && a.isLoggedIn() {
			printlnFn("Log out first to use this command:", name)
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			a.fail(ctx, err)
		}
	}
}

func lookup(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func helpText(cmds []command, loggedIn bool) string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, c := range cmds {
		if c.access == authenticated && !loggedIn || c.access == anonymousOnly && loggedIn {
			continue
		}
		b.WriteString("\n  ")
		b.WriteString(c.usage)
	}
	b.WriteString("\n  exit")
	return b.String()
}
