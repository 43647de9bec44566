// internal/ssh/builder.go

package ssh

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"rssh/internal/apperr"
	"rssh/internal/models"
	"rssh/internal/vault"
)

// VaultService to nazwa usługi, pod którą vault trzyma hasła połączeń.
const VaultService = "rssh"

const defaultDialTimeout = 10 * time.Second

// AliasStore to kontrakt magazynu aliasów widziany przez budowniczego.
type AliasStore interface {
	Get(alias string) (string, error)
}

// Prompter dostarcza interakcje z użytkownikiem podczas uwierzytelniania.
type Prompter interface {
	Password(title string) (string, error)
	Confirm(title string) (bool, error)
}

// Builder prowadzi maszynę stanów uwierzytelniania i zestawia
// uwierzytelnioną sesję dla aliasu.
type Builder struct {
	Store    AliasStore
	Vault    vault.Vault
	Prompter Prompter

	// HostKeyCallback pozwala wpiąć politykę weryfikacji klucza hosta;
	// domyślnie weryfikacja jest wyłączona.
	HostKeyCallback ssh.HostKeyCallback

	// Timeout ogranicza nawiązanie połączenia TCP i handshake.
	Timeout time.Duration
}

// Establish zestawia uwierzytelnioną sesję dla aliasu. Przy podanym
// identityPath używa klucza (z co najwyżej jednym pytaniem o passphrase),
// w przeciwnym razie hasła z vaulta lub z promptu. Prompt o hasło jest
// odroczony do fazy uwierzytelniania handshake'u, więc nieosiągalny host
// nie pyta o hasło.
func (b *Builder) Establish(alias string, port uint16, identityPath string) (*Session, error) {
	connStr, err := b.Store.Get(alias)
	if err != nil {
		return nil, err
	}

	target, err := models.ParseConnectionString(connStr, port)
	if err != nil {
		return nil, apperr.Newf(apperr.InvalidConnectionString, err,
			"invalid connection string for alias '%s'", alias)
	}

	var authMethod ssh.AuthMethod
	var pw *passwordPrompt
	if identityPath != "" {
		authMethod, err = b.keyAuth(identityPath)
	} else {
		authMethod, pw, err = b.passwordAuth(alias, connStr)
	}
	if err != nil {
		return nil, err
	}

	fmt.Printf("Connecting to %s\n", target)

	conn, err := net.DialTimeout("tcp", target.Addr(), b.timeout())
	if err != nil {
		return nil, apperr.Newf(apperr.ConnectFailed, err,
			"failed to connect to %s", target.Addr())
	}

	hostKeyCallback := b.HostKeyCallback
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	clientConfig := &ssh.ClientConfig{
		User:            target.User,
		Auth:            []ssh.AuthMethod{authMethod},
		HostKeyCallback: hostKeyCallback,
		Timeout:         b.timeout(),
	}

	ncc, chans, reqs, err := ssh.NewClientConn(conn, target.Addr(), clientConfig)
	if err != nil {
		conn.Close()
		if pw != nil && pw.err != nil {
			return nil, pw.err
		}
		if isAuthRejection(err) {
			return nil, apperr.Newf(apperr.AuthFailed, err,
				"authentication failed for '%s'", alias)
		}
		return nil, apperr.Newf(apperr.HandshakeFailed, err,
			"handshake with %s failed", target.Addr())
	}

	if pw != nil {
		pw.persist()
	}

	return newSession(conn, ssh.NewClient(ncc, chans, reqs), target), nil
}

// keyAuthState opisuje stany ścieżki kluczowej: co najwyżej jedno
// pytanie o passphrase na wywołanie.
type keyAuthState int

const (
	keyStateUnauthenticated keyAuthState = iota
	keyStateKeyTried
)

// keyAuth parsuje klucz prywatny; zaszyfrowany klucz wywołuje jedno
// pytanie o passphrase i jedną ponowną próbę.
func (b *Builder) keyAuth(identityPath string) (ssh.AuthMethod, error) {
	keyData, err := os.ReadFile(identityPath)
	if err != nil {
		return nil, apperr.Newf(apperr.AuthFailed, err,
			"failed to read identity file %s", identityPath)
	}

	state := keyStateUnauthenticated
	for {
		switch state {
		case keyStateUnauthenticated:
			signer, err := ssh.ParsePrivateKey(keyData)
			if err == nil {
				return ssh.PublicKeys(signer), nil
			}
			var missing *ssh.PassphraseMissingError
			if !errors.As(err, &missing) {
				return nil, apperr.Newf(apperr.AuthFailed, err,
					"failed to parse identity file %s", identityPath)
			}
			state = keyStateKeyTried

		case keyStateKeyTried:
			passphrase, err := b.Prompter.Password("Enter passphrase for key:")
			if err != nil {
				return nil, apperr.New(apperr.AuthFailed, "passphrase prompt declined", err)
			}
			signer, err := ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(passphrase))
			if err != nil {
				return nil, apperr.Newf(apperr.AuthFailed, err,
					"failed to decrypt identity file %s", identityPath)
			}
			return ssh.PublicKeys(signer), nil
		}
	}
}

// passwordPrompt odracza pytanie o hasło do momentu, gdy serwer faktycznie
// zażąda uwierzytelnienia, i zapamiętuje podane hasło na potrzeby oferty
// zapisu po udanym handshake'u.
type passwordPrompt struct {
	b        *Builder
	alias    string
	connStr  string
	password string
	prompted bool
	err      error
}

func (p *passwordPrompt) callback() (string, error) {
	password, err := p.b.Prompter.Password(fmt.Sprintf("Enter password for %s:", p.connStr))
	if err != nil {
		p.err = apperr.New(apperr.AuthFailed, "password prompt declined", err)
		return "", p.err
	}
	p.prompted = true
	p.password = password
	return password, nil
}

// persist oferuje zapis hasła do vaulta; tylko po udanym uwierzytelnieniu
// i tylko gdy hasło pochodziło z promptu.
func (p *passwordPrompt) persist() {
	if !p.prompted {
		return
	}
	save, cerr := p.b.Prompter.Confirm("Save password to vault?")
	if cerr != nil || !save {
		return
	}
	if serr := p.b.Vault.SetSecret(VaultService, p.alias, p.password); serr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save password: %v\n", serr)
	}
}

// passwordAuth realizuje ścieżkę hasłową: sekret z vaulta jest używany od
// razu, brak sekretu daje callback pytający dopiero w trakcie handshake'u.
func (b *Builder) passwordAuth(alias, connStr string) (ssh.AuthMethod, *passwordPrompt, error) {
	secret, err := b.Vault.GetSecret(VaultService, alias)
	switch {
	case err == nil:
		// Nieaktualny sekret objawi się jako AuthFailed przy handshake;
		// świadomie bez ponownego promptu.
		return ssh.Password(secret), nil, nil

	case errors.Is(err, vault.ErrNotFound):
		pw := &passwordPrompt{b: b, alias: alias, connStr: connStr}
		return ssh.PasswordCallback(pw.callback), pw, nil

	default:
		return nil, nil, apperr.Newf(apperr.AuthFailed, err,
			"failed to read vault entry for '%s'", alias)
	}
}

func (b *Builder) timeout() time.Duration {
	if b.Timeout > 0 {
		return b.Timeout
	}
	return defaultDialTimeout
}

// isAuthRejection odróżnia odrzucenie uwierzytelnienia od błędu
// handshake'u na podstawie komunikatu biblioteki transportowej.
func isAuthRejection(err error) bool {
	return err != nil && strings.Contains(err.Error(), "unable to authenticate")
}
