// internal/ssh/transfer.go

package ssh

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/sftp"

	"rssh/internal/apperr"
	"rssh/internal/models"
)

// transferBufferSize ogranicza bufor pośredni strumieniowania (128 KB).
const transferBufferSize = 128 * 1024

// ProgressFunc otrzymuje kopie stanu transferu; wyłącznie efekt uboczny,
// nie wpływa na poprawność transferu.
type ProgressFunc func(models.TransferStatus)

// remoteFile to zdalny plik otwarty do odczytu.
type remoteFile interface {
	io.ReadCloser
	Stat() (os.FileInfo, error)
}

// remoteFS to minimalny kontrakt podsystemu SFTP używany przez silnik
// transferu.
type remoteFS interface {
	Create(path string) (io.WriteCloser, error)
	Open(path string) (remoteFile, error)
	Close() error
}

// sftpFS adaptuje *sftp.Client do kontraktu remoteFS.
type sftpFS struct {
	client *sftp.Client
}

func (f sftpFS) Create(p string) (io.WriteCloser, error) { return f.client.Create(p) }
func (f sftpFS) Open(p string) (remoteFile, error)       { return f.client.Open(p) }
func (f sftpFS) Close() error                            { return f.client.Close() }

// Transfer obsługuje operacje transferu plików na jednej sesji.
type Transfer struct {
	fs remoteFS
}

// NewTransfer otwiera podsystem SFTP na uwierzytelnionej sesji.
func NewTransfer(sess *Session) (*Transfer, error) {
	client, err := sftp.NewClient(sess.Client())
	if err != nil {
		return nil, apperr.New(apperr.TransferFailed, "failed to create SFTP client", err)
	}
	return &Transfer{fs: sftpFS{client: client}}, nil
}

// Close zamyka podsystem SFTP.
func (t *Transfer) Close() error {
	return t.fs.Close()
}

// remoteJoin łączy zdalny katalog z nazwą pliku; zdalna strona zawsze
// używa ukośników.
func remoteJoin(dir, name string) string {
	return path.Join(strings.ReplaceAll(dir, "\\", "/"), name)
}

// Upload wysyła lokalny plik do zdalnego katalogu pod jego bazową nazwą.
func (t *Transfer) Upload(localPath, remoteDir string, onProgress ProgressFunc) error {
	info, err := os.Stat(localPath)
	if err != nil || !info.Mode().IsRegular() {
		return apperr.Newf(apperr.NotAFile, err,
			"local path %s is not a file", localPath)
	}

	remotePath := remoteJoin(remoteDir, filepath.Base(localPath))

	srcFile, err := os.Open(localPath)
	if err != nil {
		return apperr.Newf(apperr.TransferFailed, err,
			"failed to open local file %s", localPath)
	}
	defer srcFile.Close()

	dstFile, err := t.fs.Create(remotePath)
	if err != nil {
		return apperr.Newf(apperr.TransferFailed, err,
			"failed to create remote file %s", remotePath)
	}
	defer dstFile.Close()

	status := models.TransferStatus{
		LocalPath:  localPath,
		RemotePath: remotePath,
		Direction:  models.TransferUpload,
		TotalBytes: info.Size(),
		StartTime:  time.Now(),
	}

	if err := copyWithProgress(dstFile, srcFile, &status, onProgress); err != nil {
		return err
	}

	// Upewnij się, że dane zostały zapisane po zdalnej stronie
	if syncer, ok := dstFile.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			return apperr.New(apperr.TransferFailed, "failed to sync remote file", err)
		}
	}

	return nil
}

// Download pobiera zdalny plik do lokalnego katalogu pod jego bazową
// nazwą. Walidacja lokalnego celu odbywa się przed jakimkolwiek
// kontaktem ze zdalną stroną.
func (t *Transfer) Download(remotePath, localDir string, onProgress ProgressFunc) error {
	base := path.Base(strings.ReplaceAll(remotePath, "\\", "/"))
	if base == "/" || base == "." || base == ".." || strings.HasSuffix(remotePath, "/") {
		return apperr.Newf(apperr.InvalidRemotePath, nil,
			"remote path %s does not name a file", remotePath)
	}

	if info, err := os.Stat(localDir); err == nil && info.Mode().IsRegular() {
		return apperr.Newf(apperr.DestinationIsFile, nil,
			"local destination %s is a file, expected a directory", localDir)
	}
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return apperr.Newf(apperr.TransferFailed, err,
			"failed to create local directory %s", localDir)
	}

	srcFile, err := t.fs.Open(remotePath)
	if err != nil {
		return apperr.Newf(apperr.TransferFailed, err,
			"failed to open remote file %s", remotePath)
	}
	defer srcFile.Close()

	// Nieznany rozmiar degraduje postęp do samego licznika bajtów
	var totalBytes int64
	if stat, err := srcFile.Stat(); err == nil {
		totalBytes = stat.Size()
	}

	localPath := filepath.Join(localDir, base)
	dstFile, err := os.Create(localPath)
	if err != nil {
		return apperr.Newf(apperr.TransferFailed, err,
			"failed to create local file %s", localPath)
	}
	defer dstFile.Close()

	status := models.TransferStatus{
		LocalPath:  localPath,
		RemotePath: remotePath,
		Direction:  models.TransferDownload,
		TotalBytes: totalBytes,
		StartTime:  time.Now(),
	}

	if err := copyWithProgress(dstFile, srcFile, &status, onProgress); err != nil {
		return err
	}

	if err := dstFile.Sync(); err != nil {
		return apperr.New(apperr.TransferFailed, "failed to sync local file", err)
	}

	return nil
}

// copyWithProgress strumieniuje dane przez ograniczony bufor, raportując
// postęp po każdej porcji. Błąd pozostawia częściowo zapisany plik
// docelowy bez sprzątania.
func copyWithProgress(dst io.Writer, src io.Reader, status *models.TransferStatus, onProgress ProgressFunc) error {
	buf := make([]byte, transferBufferSize)
	for {
		n, err := src.Read(buf)
		if err != nil && err != io.EOF {
			return apperr.New(apperr.TransferFailed, "error reading source file", err)
		}

		if n > 0 {
			written, writeErr := dst.Write(buf[:n])
			if writeErr != nil {
				return apperr.New(apperr.TransferFailed, "error writing destination file", writeErr)
			}
			if written != n {
				return apperr.New(apperr.TransferFailed,
					fmt.Sprintf("incomplete write: wrote %d bytes instead of %d", written, n), nil)
			}

			status.TransferredBytes += int64(n)
			if onProgress != nil {
				onProgress(*status)
			}
		}

		if err == io.EOF {
			break
		}
	}

	// Końcowa aktualizacja postępu
	if onProgress != nil {
		onProgress(*status)
	}

	return nil
}
