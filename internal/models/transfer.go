// internal/models/transfer.go

package models

import "time"

// TransferDirection określa kierunek transferu pliku.
type TransferDirection int

const (
	TransferUpload TransferDirection = iota
	TransferDownload
)

func (d TransferDirection) String() string {
	if d == TransferUpload {
		return "upload"
	}
	return "download"
}

// TransferStatus reprezentuje postęp pojedynczego transferu.
// TransferredBytes rośnie monotonicznie; TotalBytes równe 0 oznacza
// nieznany rozmiar zdalnego pliku.
type TransferStatus struct {
	LocalPath        string
	RemotePath       string
	Direction        TransferDirection
	TotalBytes       int64
	TransferredBytes int64
	StartTime        time.Time
}

// BytesPerSecond zwraca przybliżoną prędkość transferu.
func (t TransferStatus) BytesPerSecond() float64 {
	elapsed := time.Since(t.StartTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(t.TransferredBytes) / elapsed
}
