// Command console runs the interactive compiler shell. With arguments
// it compiles them as inline source and exits, without entering the
// menu.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/tebeka/atexit"

	"ifcc/pkg/shell"
)

const historyFile = ".ifcc_history.db"

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func main() {
	historyPath := flag.String("history", defaultHistoryPath(), "path to the compilation history database")
	flag.Parse()

	sh := shell.New(*historyPath)
	atexit.Register(sh.Close)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigc
		sh.Close()
		os.Exit(130)
	}()

	if flag.NArg() > 0 {
		if sh.Compile(strings.Join(flag.Args(), " ")) {
			atexit.Exit(0)
		}
		atexit.Exit(1)
	}

	if err := sh.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
