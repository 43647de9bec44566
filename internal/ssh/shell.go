// internal/ssh/shell.go

package ssh

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"rssh/internal/apperr"
)

// pollInterval to takt pętli kooperacyjnej: tyle maksymalnie czekamy
// na lokalne zdarzenie wejściowe w każdej iteracji.
const pollInterval = 10 * time.Millisecond

// windowSize niesie nowe wymiary terminala po zdarzeniu resize.
type windowSize struct {
	width  int
	height int
}

// termGuard pilnuje przywrócenia trybu terminala dokładnie raz,
// niezależnie od ścieżki wyjścia z pętli.
type termGuard struct {
	fd    int
	state *term.State
	once  sync.Once
}

func makeRawGuard(fd int) (*termGuard, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw terminal: %v", err)
	}
	return &termGuard{fd: fd, state: state}, nil
}

func (g *termGuard) Restore() {
	g.once.Do(func() {
		if err := term.Restore(g.fd, g.state); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore terminal state: %v\n", err)
		}
	})
}

// RunShell uruchamia interaktywną powłokę na sesji i blokuje do czasu
// zdalnego EOF albo błędu krytycznego. Tryb raw terminala jest
// przywracany na każdej ścieżce wyjścia.
func RunShell(sess *Session) error {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24 // Wartości domyślne
	}

	ch, err := sess.OpenShellChannel(width, height)
	if err != nil {
		return err
	}
	defer ch.Close()

	guard, err := makeRawGuard(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer guard.Restore()

	done := make(chan struct{})
	defer close(done)

	keys := startKeyReader(os.Stdin, done)
	resizes, stopResize := watchResize(int(os.Stdout.Fd()))
	defer stopResize()

	return runLoop(ch, keys, resizes, os.Stdout)
}

// startKeyReader czyta surowe bajty lokalnego terminala i dekoduje je
// na zdarzenia klawiatury. Zamknięcie done kończy goroutine nawet przy
// pełnym buforze zdarzeń.
func startKeyReader(r io.Reader, done <-chan struct{}) <-chan KeyEvent {
	events := make(chan KeyEvent, 32)
	go func() {
		defer close(events)
		var decoder keyDecoder
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				for _, ev := range decoder.Feed(buf[:n]) {
					select {
					case events <- ev:
					case <-done:
						return
					}
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return events
}

// runLoop to jednowątkowa pętla kooperacyjna: w każdej iteracji faza
// wejścia (najwyżej jeden takt oczekiwania), potem faza wyjścia
// (drenaż wszystkich dostępnych danych bez blokowania).
func runLoop(ch shellStream, keys <-chan KeyEvent, resizes <-chan windowSize, out io.Writer) error {
	buf := make([]byte, channelReadBufferSize)

	for {
		// Faza wejścia
		select {
		case ev, ok := <-keys:
			if !ok {
				keys = nil
				break
			}
			if b := EncodeKey(ev); len(b) > 0 {
				// Pojedyncze zdarzenie trafia do kanału w jednym zapisie
				if _, err := ch.Write(b); err != nil {
					return fmt.Errorf("channel write error: %v", err)
				}
			}
		case size, ok := <-resizes:
			if !ok {
				resizes = nil
				break
			}
			if err := ch.Resize(size.width, size.height); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to update window size: %v\r\n", err)
			}
		case <-time.After(pollInterval):
		}

		// Faza wyjścia
		for {
			n, err := ch.Read(buf)
			if n > 0 {
				if _, werr := out.Write(buf[:n]); werr != nil {
					return fmt.Errorf("failed to write to terminal: %v", werr)
				}
			}
			if err == nil {
				continue
			}
			if errors.Is(err, ErrWouldBlock) {
				break
			}
			if errors.Is(err, io.EOF) {
				// Zdalna strona zamknęła powłokę
				return nil
			}
			return apperr.New(apperr.ChannelReadError, "channel read error", err)
		}
	}
}
