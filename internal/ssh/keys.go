// internal/ssh/keys.go

package ssh

import "unicode/utf8"

// KeyCode identyfikuje rodzaj zdarzenia klawiatury.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeyEscape
)

// KeyEvent reprezentuje pojedyncze naciśnięcie klawisza zdekodowane
// z lokalnego terminala.
type KeyEvent struct {
	Code KeyCode
	Rune rune
	Ctrl bool
}

// EncodeKey tłumaczy zdarzenie klawiatury na sekwencję bajtów wysyłaną
// do zdalnego kanału. Niezmapowane zdarzenia dają pustą sekwencję.
func EncodeKey(ev KeyEvent) []byte {
	switch ev.Code {
	case KeyRune:
		if ev.Ctrl {
			if ev.Rune >= 'a' && ev.Rune <= 'z' {
				return []byte{byte(ev.Rune-'a') + 1}
			}
			return nil
		}
		if ev.Rune < 0x20 {
			return nil
		}
		if ev.Rune < utf8.RuneSelf {
			return []byte{byte(ev.Rune)}
		}
		buf := make([]byte, utf8.UTFMax)
		n := utf8.EncodeRune(buf, ev.Rune)
		return buf[:n]
	case KeyEnter:
		return []byte{'\r'}
	case KeyBackspace:
		return []byte{0x08}
	case KeyLeft:
		return []byte("\x1b[D")
	case KeyRight:
		return []byte("\x1b[C")
	case KeyUp:
		return []byte("\x1b[A")
	case KeyDown:
		return []byte("\x1b[B")
	case KeyTab:
		return []byte{'\t'}
	case KeyEscape:
		return []byte{0x1b}
	}
	return nil
}

// keyDecoder dekoduje surowy strumień bajtów terminala w trybie raw na
// zdarzenia klawiatury. Niekompletne sekwencje CSI czekają na kolejne bajty.
type keyDecoder struct {
	pending []byte
}

// Feed dokłada odczytane bajty i zwraca wszystkie kompletne zdarzenia.
func (d *keyDecoder) Feed(p []byte) []KeyEvent {
	d.pending = append(d.pending, p...)

	var events []KeyEvent
	for len(d.pending) > 0 {
		ev, consumed := d.decodeOne()
		if consumed == 0 {
			// Czekamy na resztę sekwencji
			break
		}
		d.pending = d.pending[consumed:]
		if ev != nil {
			events = append(events, *ev)
		}
	}
	return events
}

func (d *keyDecoder) decodeOne() (*KeyEvent, int) {
	b := d.pending[0]

	if b == 0x1b {
		if len(d.pending) == 1 {
			// Samotny ESC w buforze traktujemy jako klawisz Escape;
			// pełne sekwencje strzałek przychodzą w jednym odczycie.
			return &KeyEvent{Code: KeyEscape}, 1
		}
		if d.pending[1] == '[' {
			if len(d.pending) < 3 {
				return nil, 0
			}
			switch d.pending[2] {
			case 'A':
				return &KeyEvent{Code: KeyUp}, 3
			case 'B':
				return &KeyEvent{Code: KeyDown}, 3
			case 'C':
				return &KeyEvent{Code: KeyRight}, 3
			case 'D':
				return &KeyEvent{Code: KeyLeft}, 3
			}
			// Nieznana sekwencja CSI: pomijamy w całości
			return nil, 3
		}
		return &KeyEvent{Code: KeyEscape}, 1
	}

	switch b {
	case '\r', '\n':
		return &KeyEvent{Code: KeyEnter}, 1
	case '\t':
		return &KeyEvent{Code: KeyTab}, 1
	case 0x7f, 0x08:
		return &KeyEvent{Code: KeyBackspace}, 1
	}

	// Bajty kontrolne 1..26 to Ctrl+a..z
	if b >= 1 && b <= 26 {
		return &KeyEvent{Code: KeyRune, Rune: rune('a' + b - 1), Ctrl: true}, 1
	}
	if b < 0x20 {
		return nil, 1
	}

	if b < utf8.RuneSelf {
		return &KeyEvent{Code: KeyRune, Rune: rune(b)}, 1
	}

	r, size := utf8.DecodeRune(d.pending)
	if r == utf8.RuneError && size <= 1 {
		if !utf8.FullRune(d.pending) && len(d.pending) < utf8.UTFMax {
			return nil, 0
		}
		return nil, 1
	}
	return &KeyEvent{Code: KeyRune, Rune: r}, size
}
