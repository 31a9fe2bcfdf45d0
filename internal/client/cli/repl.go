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
	onError(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error
	Whoami(ctx context.Context) error
	Passwd(ctx context.Context) error
	ResetPassword(ctx context.Context) error

	Posts(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Publish(ctx context.Context) error
	Comments(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string, on bool) error
	Collect(ctx context.Context, args []string, on bool) error
	Plates(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: register, login, resetpw, posts [hot|essence|mine] [page], post <id>, " +
		"search <text>, comments <postID>, plates [page], exit"
	userHelp = "Available commands: posts [hot|essence|mine] [page], post <id>, search <text>, publish, " +
		"comments <postID>, comment <postID> [parentID], like|unlike <postID>, collect|uncollect <postID>, " +
		"plates [page], profile [userID], whoami, passwd, logout, forget, exit"
)

// runREPL starts a simple read–eval–print loop for the forum CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by command handlers go to
// a.onError, which also handles an expired session. The loop exits on EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("forum %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "forget":
			cmdErr = a.Forget(ctx)
		case "whoami":
			cmdErr = a.Whoami(ctx)
		case "passwd":
			cmdErr = a.Passwd(ctx)
		case "resetpw":
			cmdErr = a.ResetPassword(ctx)

		case "posts", "p":
			cmdErr = a.Posts(ctx, args)
		case "post":
			cmdErr = a.Post(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "publish":
			cmdErr = a.Publish(ctx)
		case "comments":
			cmdErr = a.Comments(ctx, args)
		case "comment":
			cmdErr = a.Comment(ctx, args)
		case "like", "unlike":
			cmdErr = a.Like(ctx, args, cmd == "like")
		case "collect", "uncollect":
			cmdErr = a.Collect(ctx, args, cmd == "collect")
		case "plates":
			cmdErr = a.Plates(ctx, args)
		case "profile":
			cmdErr = a.Profile(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.onError(ctx, cmdErr)
	}
}
