// internal/ssh/sigwinch_unix.go
//go:build !windows

package ssh

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// watchResize nasłuchuje SIGWINCH i publikuje nowe wymiary terminala.
// Zwrócona funkcja zatrzymuje nasłuch.
func watchResize(fd int) (<-chan windowSize, func()) {
	sizes := make(chan windowSize, 1)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)
	stop := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigChan:
				width, height, err := term.GetSize(fd)
				if err != nil {
					continue
				}
				// Zatrzymujemy tylko najnowszy rozmiar
				select {
				case sizes <- windowSize{width: width, height: height}:
				default:
				}
			case <-stop:
				return
			}
		}
	}()

	return sizes, func() {
		signal.Stop(sigChan)
		close(stop)
	}
}
