// Package export はデッキのエクスポート形式 (XLSX) を生成します
package export

import (
	"fmt"
	"io"
	"strings"

	"go_5_flashcard_srs/internal/model"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Cards"

var headers = []string{"Front", "Back", "Phonetic", "Examples"}

// WriteXLSX はデッキのカードを1シートのXLSXとして w に書き出します。
// 例文は改行区切りで1セルにまとめる。
func WriteXLSX(w io.Writer, deck *model.DeckExport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "D1", style)
	}

	for i, c := range deck.Cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		row := []interface{}{c.Front, c.Back, c.Phonetic, strings.Join(c.Examples, "\n")}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "C", 24)
	_ = f.SetColWidth(sheetName, "D", "D", 60)
	_ = f.SetDocProps(&excelize.DocProperties{Title: deck.Deck.Name})

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

// FileName はダウンロード用のファイル名 (空白はアンダースコア) を返します
func FileName(deckName, ext string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', ';':
			return -1
		}
		return r
	}, deckName)
	name := strings.Join(strings.Fields(cleaned), "_")
	if name == "" {
		name = "deck"
	}
	return name + "_export." + ext
}
