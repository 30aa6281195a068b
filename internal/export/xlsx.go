package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alugaki/internal/models"

	"github.com/xuri/excelize/v2"
)

// Reporter writes catalog snapshots as Excel workbooks under the configured
// exports directory.
type Reporter struct {
	path string
}

func NewReporter(path string) *Reporter {
	return &Reporter{path: path}
}

// WriteCatalogReport produces a workbook with one sheet for the catalog and
// one for the conversations, returning the written file path.
func (r *Reporter) WriteCatalogReport(items []models.Item, chats []*models.Chat) (string, error) {
	if err := os.MkdirAll(r.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeCatalogSheet(f, items); err != nil {
		return "", err
	}
	if err := r.writeChatsSheet(f, chats); err != nil {
		return "", err
	}

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(r.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving export file: %v", err)
	}
	return filePath, nil
}

func (r *Reporter) writeCatalogSheet(f *excelize.File, items []models.Item) error {
	const sheetName = "Catálogo"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Título", "Categoria", "Preço/dia", "Máx. dias", "Cidade", "Proprietário", "Disponível"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, style)

	for row, item := range items {
		values := []interface{}{
			item.ID,
			item.Title,
			item.Category.Label(),
			item.PricePerDay,
			item.MaxRentalDays,
			item.Location.City,
			item.Owner.Name,
			item.Available,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "B", "B", 35)
	_ = f.SetColWidth(sheetName, "C", "H", 18)
	return nil
}

func (r *Reporter) writeChatsSheet(f *excelize.File, chats []*models.Chat) error {
	const sheetName = "Conversas"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}

	headers := []string{"ID", "Item", "Participantes", "Mensagens", "Criado em"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for row, chat := range chats {
		names := make([]string, 0, len(chat.Participants))
		for _, p := range chat.Participants {
			names = append(names, p.Name)
		}
		values := []interface{}{
			chat.ID,
			chat.ItemID,
			strings.Join(names, ", "),
			len(chat.Messages),
			chat.CreatedAt.Format("02.01.2006 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "C", "C", 30)
	return nil
}
