// internal/ssh/channel.go

package ssh

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrWouldBlock sygnalizuje, że kanał nie ma w tej chwili żadnych danych.
var ErrWouldBlock = errors.New("channel read would block")

// shellStream to minimalny kontrakt kanału powłoki używany przez pętlę
// multipleksującą. Read zwraca ErrWouldBlock przy braku danych i io.EOF
// po zamknięciu zdalnej strony.
type shellStream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Resize(width, height int) error
	Close() error
}

const channelReadBufferSize = 32 * 1024

// Channel reprezentuje kanał powłoki z przydzielonym pseudoterminalem.
// Odczyt jest nieblokujący: goroutine pompująca przepisuje wyjście zdalne
// do bufora kanałowego, z którego Read pobiera dane bez czekania.
type Channel struct {
	session *ssh.Session
	stdin   io.WriteCloser

	chunks   chan []byte
	pumpErr  error // ustawiany przed zamknięciem chunks
	leftover []byte
	done     bool
}

// openChannel otwiera kanał, żąda pseudoterminala o podanych wymiarach
// i uruchamia zdalną powłokę.
func openChannel(client *ssh.Client, width, height int) (*Channel, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %v", err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
		ssh.VINTR:         3,  // Ctrl+C
		ssh.VQUIT:         28, // Ctrl+\
		ssh.VERASE:        127,
		ssh.VKILL:         21, // Ctrl+U
		ssh.VEOF:          4,  // Ctrl+D
		ssh.VWERASE:       23, // Ctrl+W
		ssh.VLNEXT:        22, // Ctrl+V
		ssh.VSUSP:         26, // Ctrl+Z
	}

	if err := session.RequestPty("xterm-256color", height, width, modes); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to request PTY: %v", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to open stdin pipe: %v", err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to open stdout pipe: %v", err)
	}

	if err := session.Shell(); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to start shell: %v", err)
	}

	c := &Channel{
		session: session,
		stdin:   stdin,
		chunks:  make(chan []byte, 64),
	}
	go c.pump(stdout)

	return c, nil
}

// pump przepisuje zdalne wyjście do bufora kanałowego. Błąd odczytu
// (w tym io.EOF) kończy pompowanie i zamyka bufor.
func (c *Channel) pump(r io.Reader) {
	buf := make([]byte, channelReadBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			c.chunks <- chunk
		}
		if err != nil {
			c.pumpErr = err
			close(c.chunks)
			return
		}
	}
}

// Read pobiera dostępne dane bez blokowania. Zwraca ErrWouldBlock gdy
// bufor jest pusty, a io.EOF po wyczerpaniu danych i zamknięciu zdalnej
// strony.
func (c *Channel) Read(p []byte) (int, error) {
	if len(c.leftover) > 0 {
		n := copy(p, c.leftover)
		c.leftover = c.leftover[n:]
		return n, nil
	}
	if c.done {
		return 0, c.readErr()
	}

	select {
	case chunk, ok := <-c.chunks:
		if !ok {
			c.done = true
			return 0, c.readErr()
		}
		n := copy(p, chunk)
		if n < len(chunk) {
			c.leftover = chunk[n:]
		}
		return n, nil
	default:
		return 0, ErrWouldBlock
	}
}

func (c *Channel) readErr() error {
	if c.pumpErr == nil {
		return io.EOF
	}
	return c.pumpErr
}

// Write wysyła bajty do zdalnej powłoki.
func (c *Channel) Write(p []byte) (int, error) {
	return c.stdin.Write(p)
}

// Resize propaguje nowe wymiary do pseudoterminala kanału.
func (c *Channel) Resize(width, height int) error {
	return c.session.WindowChange(height, width)
}

// Close zamyka kanał wraz z sesją.
func (c *Channel) Close() error {
	_ = c.stdin.Close()
	if err := c.session.Close(); err != nil && !errors.Is(err, io.EOF) &&
		!strings.Contains(err.Error(), "closed") {
		return fmt.Errorf("session close error: %v", err)
	}
	return nil
}
