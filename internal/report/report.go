// Package report renders player progress as a printable PDF.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"chemquest/internal/app"
)

const (
	pageWidth = 210.0
	margin    = 15.0
	barWidth  = pageWidth - 2*margin
)

// WriteProgressReport writes a one-page report with rank, XP progress and recent boss attempts.
func WriteProgressReport(w io.Writer, profile app.PlayerProfile) error {
	p := profile.Player
	rank := profile.Rank

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("ChemQuest progress: "+p.DisplayName, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "ChemQuest Progress Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", p.DisplayName, p.ID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Rank: %s [%s]", rank.Current.Name, rank.Current.Symbol), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if rank.Next != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("%d XP, %d to %s", rank.XP, rank.XPToNext, rank.Next.Name), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 6, fmt.Sprintf("%d XP, highest rank reached", rank.XP), "", 1, "L", false, 0, "")
	}

	y := pdf.GetY() + 2
	pdf.SetFillColor(225, 225, 225)
	pdf.Rect(margin, y, barWidth, 5, "F")
	pdf.SetFillColor(46, 139, 87)
	pdf.Rect(margin, y, barWidth*float64(rank.Progress)/100, 5, "F")
	pdf.SetY(y + 9)

	stats := [][2]string{
		{"Coins", strconv.Itoa(p.Coins)},
		{"Gems", strconv.Itoa(p.Gems)},
		{"Best streak", strconv.Itoa(p.BestStreak)},
		{"Games played", strconv.Itoa(p.GamesPlayed)},
		{"Bosses defeated", strconv.Itoa(p.BossWins)},
	}
	for _, s := range stats {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 6, s[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, s[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Recent boss attempts", "", 1, "L", false, 0, "")
	if len(profile.Attempts) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 6, "No boss battles yet.", "", 1, "L", false, 0, "")
	} else {
		writeAttempts(pdf, profile)
	}

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Generated "+time.Now().UTC().Format(time.RFC1123), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func writeAttempts(pdf *gofpdf.Fpdf, profile app.PlayerProfile) {
	headers := []string{"Date", "Boss", "Result", "Turns", "Damage", "XP", "Coins"}
	widths := []float64{35, 50, 22, 18, 20, 15, 20}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, a := range profile.Attempts {
		result := "Retreat"
		if a.Victory {
			result = "Victory"
		}
		row := []string{
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.BossID,
			result,
			strconv.Itoa(a.Turns),
			strconv.Itoa(a.DamageDealt),
			strconv.Itoa(a.XP),
			strconv.Itoa(a.Coins),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
