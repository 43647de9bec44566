// internal/ui/progress.go

package ui

import (
	"fmt"
	"strings"

	"rssh/internal/models"
)

// minBarWidth to najmniejszy sensowny pasek postępu.
const minBarWidth = 10

// FormatBytes formatuje liczbę bajtów w jednostkach binarnych.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

// FormatRate formatuje prędkość transferu.
func FormatRate(bytesPerSecond float64) string {
	return FormatBytes(int64(bytesPerSecond)) + "/s"
}

// RenderProgress renderuje jedną linię stanu transferu. Przy nieznanym
// rozmiarze całkowitym pokazuje sam licznik bajtów.
func RenderProgress(st models.TransferStatus, width int) string {
	rate := FormatRate(st.BytesPerSecond())

	if st.TotalBytes <= 0 {
		return fmt.Sprintf("%s (%s)", FormatBytes(st.TransferredBytes), rate)
	}

	percent := float64(st.TransferredBytes) / float64(st.TotalBytes)
	if percent > 1 {
		percent = 1
	}

	counts := fmt.Sprintf("%3.0f%% %s/%s (%s)",
		percent*100, FormatBytes(st.TransferredBytes), FormatBytes(st.TotalBytes), rate)

	barWidth := width - len(counts) - 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	filled := int(percent * float64(barWidth))
	var bar strings.Builder
	bar.WriteByte('[')
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			bar.WriteByte('=')
		case i == filled && percent < 1:
			bar.WriteByte('>')
		default:
			bar.WriteByte(' ')
		}
	}
	bar.WriteByte(']')

	return bar.String() + " " + counts
}
