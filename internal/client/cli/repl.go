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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Sort(ctx context.Context, key string) error
	Delete(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Refresh(ctx context.Context) error
	Analytics(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Forget(ctx context.Context) error
}

// adminCommands require a signed-in operator.
var adminCommands = map[string]struct{}{
	"l": {}, "list": {}, "search": {}, "sort": {}, "delete": {}, "add": {},
	"refresh": {}, "analytics": {}, "stats": {}, "export": {}, "forget": {}, "logout": {},
}

// runREPL starts a simple read–eval–print loop for the UserDesk console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// operator. The loop exits on EOF or when the operator types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              show available commands
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - (l)ist            show the user table
//	  - search [text]     filter by name or email (no text clears)
//	  - sort [column]     sort by name, email or role
//	  - delete <id>       delete a user after confirmation
//	  - add               create a user
//	  - refresh           re-fetch the users
//	  - analytics         show the registration dashboard
//	  - export [file]     write a JSON report
//	  - forget            drop cached offline credentials
//	  - logout            sign out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ud %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("input error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if _, ok := adminCommands[cmd]; ok && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search [text], sort [name|email|role], delete <id>, add, refresh, analytics, export [file], forget, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "sort":
			key := ""
			if len(args) > 0 {
				key = args[0]
			}
			_ = a.Sort(ctx, key)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "add":
			_ = a.Add(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "analytics", "stats":
			_ = a.Analytics(ctx)

		case "export":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			_ = a.Export(ctx, path)

		case "forget":
			_ = a.Forget(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
