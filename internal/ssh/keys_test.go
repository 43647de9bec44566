package ssh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeKey_TranslationTable(t *testing.T) {
	cases := []struct {
		name string
		ev   KeyEvent
		want []byte
	}{
		{"printable letter", KeyEvent{Code: KeyRune, Rune: 'x'}, []byte{'x'}},
		{"printable digit", KeyEvent{Code: KeyRune, Rune: '7'}, []byte{'7'}},
		{"space", KeyEvent{Code: KeyRune, Rune: ' '}, []byte{' '}},
		{"ctrl-a", KeyEvent{Code: KeyRune, Rune: 'a', Ctrl: true}, []byte{1}},
		{"ctrl-c", KeyEvent{Code: KeyRune, Rune: 'c', Ctrl: true}, []byte{3}},
		{"ctrl-z", KeyEvent{Code: KeyRune, Rune: 'z', Ctrl: true}, []byte{26}},
		{"enter", KeyEvent{Code: KeyEnter}, []byte{'\r'}},
		{"backspace", KeyEvent{Code: KeyBackspace}, []byte{0x08}},
		{"left", KeyEvent{Code: KeyLeft}, []byte("\x1b[D")},
		{"right", KeyEvent{Code: KeyRight}, []byte("\x1b[C")},
		{"up", KeyEvent{Code: KeyUp}, []byte("\x1b[A")},
		{"down", KeyEvent{Code: KeyDown}, []byte("\x1b[B")},
		{"tab", KeyEvent{Code: KeyTab}, []byte{'\t'}},
		{"escape", KeyEvent{Code: KeyEscape}, []byte{0x1b}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EncodeKey(tc.ev))
		})
	}
}

func TestEncodeKey_UnmappedProducesNoBytes(t *testing.T) {
	cases := []struct {
		name string
		ev   KeyEvent
	}{
		{"ctrl with digit", KeyEvent{Code: KeyRune, Rune: '1', Ctrl: true}},
		{"ctrl with uppercase", KeyEvent{Code: KeyRune, Rune: 'A', Ctrl: true}},
		{"control rune without ctrl", KeyEvent{Code: KeyRune, Rune: 0x07}},
		{"unknown code", KeyEvent{Code: KeyCode(99)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, EncodeKey(tc.ev))
		})
	}
}

func TestEncodeKey_MultibyteRune(t *testing.T) {
	assert.Equal(t, []byte("ż"), EncodeKey(KeyEvent{Code: KeyRune, Rune: 'ż'}))
}

func TestKeyDecoder_SingleBytes(t *testing.T) {
	var d keyDecoder

	events := d.Feed([]byte("ls"))
	assert.Equal(t, []KeyEvent{
		{Code: KeyRune, Rune: 'l'},
		{Code: KeyRune, Rune: 's'},
	}, events)
}

func TestKeyDecoder_ControlBytes(t *testing.T) {
	var d keyDecoder

	events := d.Feed([]byte{3, '\r', '\t', 0x7f})
	assert.Equal(t, []KeyEvent{
		{Code: KeyRune, Rune: 'c', Ctrl: true},
		{Code: KeyEnter},
		{Code: KeyTab},
		{Code: KeyBackspace},
	}, events)
}

func TestKeyDecoder_ArrowSequence(t *testing.T) {
	var d keyDecoder

	events := d.Feed([]byte("\x1b[A\x1b[D"))
	assert.Equal(t, []KeyEvent{{Code: KeyUp}, {Code: KeyLeft}}, events)
}

func TestKeyDecoder_SplitSequence(t *testing.T) {
	var d keyDecoder

	assert.Empty(t, d.Feed([]byte("\x1b[")))
	assert.Equal(t, []KeyEvent{{Code: KeyRight}}, d.Feed([]byte("C")))
}

func TestKeyDecoder_LoneEscape(t *testing.T) {
	var d keyDecoder

	events := d.Feed([]byte{0x1b})
	assert.Equal(t, []KeyEvent{{Code: KeyEscape}}, events)
}

func TestKeyDecoder_RoundTripThroughTable(t *testing.T) {
	var d keyDecoder

	var sent []byte
	for _, ev := range d.Feed([]byte("echo\r\x1b[B")) {
		sent = append(sent, EncodeKey(ev)...)
	}
	assert.Equal(t, []byte("echo\r\x1b[B"), sent)
}
