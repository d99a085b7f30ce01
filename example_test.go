package synctok_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/creachadair/synctok"
	"golang.org/x/sync/errgroup"
)

func ExampleRace() {
	canceler, cancelable := synctok.NewCancel()

	// An operation that finishes promptly wins the race.
	fmt.Println(synctok.Race(cancelable, func() string { return "all done" }, "gave up"))

	// Once cancellation is signalled, the race is decided without running the
	// operation at all.
	canceler.Cancel()
	fmt.Println(synctok.Race(cancelable, func() string { return "never runs" }, "gave up"))

	// Output:
	// all done
	// gave up
}

func ExampleNewCompletion() {
	completion, completer := synctok.NewCompletion[string]()

	// A background task announces a milestone exactly once.
	go completer.Complete("milestone reached")

	// Any number of handles can wait for and read the result.
	v, err := completion.Wait(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)

	// Output:
	// milestone reached
}

var errStopped = errors.New("server stopped")

// Example_serverLifecycle runs a TCP server on a background goroutine. The
// server announces its listen address through a completion pair once it is
// actually listening, and its accept loop is abandoned through a cancellation
// pair when the controller is done with it.
func Example_serverLifecycle() {
	ready, announce := synctok.NewCompletion[net.Addr]()
	canceler, cancelable := synctok.NewCancel()

	var g errgroup.Group
	g.Go(func() error {
		lst, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return err
		}
		defer lst.Close() // unblocks an abandoned Accept

		// Tell the controller the server is listening, and where.
		announce.Complete(lst.Addr())

		for {
			conn := synctok.Race(cancelable, func() net.Conn {
				c, err := lst.Accept()
				if err != nil {
					return nil
				}
				return c
			}, nil)
			if conn == nil {
				return errStopped
			}
			conn.Close()
		}
	})

	// Wait for the server to start.
	addr, err := ready.Wait(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("server is listening")

	// Talk to it.
	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		log.Fatal(err)
	}
	conn.Close()

	// Stop the server and wait for it to wind down.
	canceler.Cancel()
	fmt.Println("server ended:", g.Wait())

	// Output:
	// server is listening
	// server ended: server stopped
}
