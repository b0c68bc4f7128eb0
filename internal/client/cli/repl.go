package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Find(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Show(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. It returns on
// EOF, on "exit" / "quit", or once ctx is done.
//
//	help                          show available commands
//	find <CF>                     load a person by codice fiscale
//	search [cognome] [provincia]  list matching persons
//	new                           create a person
//	edit [CF]                     edit the loaded (or given) person
//	delete [CF]                   delete the loaded (or given) person
//	show                          print the loaded person
//	exit | quit                   leave the program
//
// Command errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(msgHelp)
		case "find", "f":
			_ = a.Find(ctx, args)
		case "search", "s":
			_ = a.Search(ctx, args)
		case "new":
			_ = a.New(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete", "del":
			_ = a.Delete(ctx, args)
		case "show":
			_ = a.Show(ctx)
		case "exit", "quit":
			printlnFn(msgBye)
			return
		default:
			printlnFn(msgUnknownCommand, cmd)
		}
	}
}
