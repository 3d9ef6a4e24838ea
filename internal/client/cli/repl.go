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

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Mine(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Ask(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Answer(ctx context.Context, args []string) error
	EditAnswer(ctx context.Context, args []string) error
	DeleteAnswer(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: register, login, list [tag|-] [text], show <questionid>, exit"
	helpMember = "Available commands: list [tag|-] [text], mine, show <questionid>, ask, edit <questionid>, delete <questionid>, " +
		"answer <questionid>, editanswer <answerid>, delanswer <answerid>, whoami, logout, exit"
)

// runREPL reads commands line by line from in and dispatches them to a.
// Errors returned by a command are printed and the loop goes on. The loop
// exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("qa %s> ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "mine":
			cmdErr = a.Mine(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "ask":
			cmdErr = a.Ask(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "answer":
			cmdErr = a.Answer(ctx, args)
		case "editanswer":
			cmdErr = a.EditAnswer(ctx, args)
		case "delanswer":
			cmdErr = a.DeleteAnswer(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

// usageError is returned when a command is missing its argument.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }
