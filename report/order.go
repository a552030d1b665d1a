// Package report renders procurement documents
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"procurement-service/domain/model"
)

// ContentType is the media type of the workbooks produced here
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	orderSheet     = "Purchase Order"
	lineHeaderRow  = 12
	placedAtLayout = "2006-01-02 15:04"
)

var lineHeaders = []string{"Ingredient", "Brand", "Unit", "Quantity", "Price", "Line Total"}

// OrderFileName is the attachment name of an order workbook
func OrderFileName(order *model.Order) string {
	return fmt.Sprintf("purchase-order-%d.xlsx", order.ID)
}

// OrderWorkbook renders an order, loaded with its supplier profile and lines,
// as a purchase order: a header block, the snapshot lines and the grand total
func OrderWorkbook(order *model.Order) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", orderSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	profile := order.SupplierProfile
	header := [][2]any{
		{"Order No.", order.ID},
		{"Supplier", profile.Name},
		{"Contact", profile.ContactEmail},
		{"Phone", profile.Phone},
		{"Address", profile.Address},
		{"Payment Terms", string(profile.PaymentType)},
		{"Status", string(order.Status)},
		{"Placed At", order.PlacedAt.Format(placedAtLayout)},
		{"Tracking Number", order.TrackingNumber},
	}

	if err := f.SetCellValue(orderSheet, "A1", "Purchase Order"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(orderSheet, "A1", "A1", bold); err != nil {
		return nil, err
	}
	for i, row := range header {
		if err := setRow(f, i+2, row[0], row[1]); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, lineHeaderRow, toAny(lineHeaders)...); err != nil {
		return nil, err
	}
	first, _ := excelize.CoordinatesToCellName(1, lineHeaderRow)
	last, _ := excelize.CoordinatesToCellName(len(lineHeaders), lineHeaderRow)
	if err := f.SetCellStyle(orderSheet, first, last, headerStyle); err != nil {
		return nil, err
	}

	row := lineHeaderRow + 1
	for _, item := range order.Items {
		if err := setRow(f, row, item.IngredientName, item.BrandName, string(item.Unit), item.Quantity, item.Price, item.LineTotal); err != nil {
			return nil, err
		}
		row++
	}

	labelCell, _ := excelize.CoordinatesToCellName(len(lineHeaders)-1, row)
	totalCell, _ := excelize.CoordinatesToCellName(len(lineHeaders), row)
	if err := f.SetCellValue(orderSheet, labelCell, "Grand Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(orderSheet, totalCell, order.TotalAmount); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(orderSheet, labelCell, totalCell, bold); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(orderSheet, "A", "F", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func setRow(f *excelize.File, row int, values ...any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(orderSheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
