// internal/ssh/sigwinch_windows.go
//go:build windows

package ssh

// watchResize nie ma odpowiednika SIGWINCH na Windows; zmiany rozmiaru
// terminala nie są propagowane.
func watchResize(fd int) (<-chan windowSize, func()) {
	return nil, func() {}
}
