// Package export renders delivery orders as spreadsheets
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gauss2302/agrogame/internal/domain"
)

// Spreadsheet layout
const (
	OrdersSheet    = "Orders"
	defaultSheet   = "Sheet1"
	timeLayout     = time.RFC3339
	columnWidth    = 18
	ContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FilenameFormat = "farm-%d-orders.xlsx"
)

// Error messages
const (
	ErrMsgCreateSheet = "failed to create orders sheet"
	ErrMsgWriteRow    = "failed to write orders row"
	ErrMsgStyle       = "failed to style orders sheet"
	ErrMsgWriteFile   = "failed to write orders workbook"
)

// OrderHeaders are the column titles, in order
var OrderHeaders = []string{
	"Order ID", "Reference", "Quantity", "Virtual Units", "Status",
	"Recipient", "Phone", "Address", "Notes",
	"Created At", "Confirmed At", "Shipped At", "Delivered At",
}

// Filename is the download name for a farm's order export
func Filename(farmID int64) string {
	return fmt.Sprintf(FilenameFormat, farmID)
}

// WriteOrders writes orders as an XLSX workbook with one row per order
func WriteOrders(w io.Writer, orders []domain.DeliveryOrder) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, OrdersSheet); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCreateSheet, err)
	}

	header := make([]interface{}, len(OrderHeaders))
	for i, h := range OrderHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(OrdersSheet, "A1", &header); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteRow, err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgWriteRow, err)
		}
		row := orderRow(o)
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgWriteRow, err)
		}
	}

	if err := styleHeader(f); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgStyle, err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteFile, err)
	}
	return nil
}

func orderRow(o domain.DeliveryOrder) []interface{} {
	return []interface{}{
		o.ID,
		o.Reference,
		o.Quantity,
		o.VirtualUnitsConsumed,
		string(o.Status),
		o.Recipient.Name,
		o.Recipient.Phone,
		o.Recipient.Address,
		o.Recipient.Notes,
		o.CreatedAt.UTC().Format(timeLayout),
		formatOptional(o.ConfirmedAt),
		formatOptional(o.ShippedAt),
		formatOptional(o.DeliveredAt),
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func styleHeader(f *excelize.File) error {
	lastCol, err := excelize.ColumnNumberToName(len(OrderHeaders))
	if err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(OrdersSheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(OrdersSheet, "A", lastCol, columnWidth); err != nil {
		return err
	}
	return f.SetPanes(OrdersSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
