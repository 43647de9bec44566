// internal/ssh/session.go

package ssh

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"rssh/internal/models"
)

// Session reprezentuje uwierzytelnione, żywe połączenie SSH. Sesja ma
// dokładnie jednego właściciela: operację (powłoka albo transfer), która
// ją konsumuje i zamyka.
type Session struct {
	conn      net.Conn
	client    *ssh.Client
	target    models.Target
	keepAlive time.Duration
	stopChan  chan struct{}
	closeOnce sync.Once
}

func newSession(conn net.Conn, client *ssh.Client, target models.Target) *Session {
	return &Session{
		conn:      conn,
		client:    client,
		target:    target,
		keepAlive: 30 * time.Second,
		stopChan:  make(chan struct{}),
	}
}

// Client zwraca natywnego klienta golang.org/x/crypto/ssh.
func (s *Session) Client() *ssh.Client {
	return s.client
}

// Target zwraca cel połączenia.
func (s *Session) Target() models.Target {
	return s.target
}

// OpenShellChannel otwiera kanał powłoki z pseudoterminalem o podanych
// wymiarach i uruchamia pętlę keepalive na czas życia sesji.
func (s *Session) OpenShellChannel(width, height int) (*Channel, error) {
	ch, err := openChannel(s.client, width, height)
	if err != nil {
		return nil, err
	}

	if s.keepAlive > 0 {
		go s.keepAliveLoop()
	}

	return ch, nil
}

// keepAliveLoop wysyła pakiety keepalive do czasu zamknięcia sesji.
func (s *Session) keepAliveLoop() {
	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, _, err := s.client.SendRequest("keepalive@openssh.com", true, nil); err != nil {
				return
			}
		case <-s.stopChan:
			return
		}
	}
}

// Close zamyka sesję; wielokrotne wywołania są bezpieczne.
func (s *Session) Close() error {
	var errs []string

	s.closeOnce.Do(func() {
		close(s.stopChan)

		if s.client != nil {
			// Zamknięcie klienta zamyka też połączenie TCP
			if err := s.client.Close(); err != nil {
				errs = append(errs, fmt.Sprintf("client close error: %v", err))
			}
		} else if s.conn != nil {
			if err := s.conn.Close(); err != nil {
				errs = append(errs, fmt.Sprintf("conn close error: %v", err))
			}
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
