package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

const ordersSheet = "Buyurtmalar"

type excelReportWriter struct{}

// NewExcelReportWriter Excel hisobot yozuvchisini yaratish
func NewExcelReportWriter() repository.ReportWriter {
	return &excelReportWriter{}
}

// BuildOrdersReport buyurtmalardan Excel hisobot yaratish
func (w *excelReportWriter) BuildOrdersReport(ctx context.Context, orders []entity.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ordersSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet yaratib bo'lmadi: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"#", "Mahsulot", "Mijoz", "Telefon", "Manzil", "Narx ($)", "To'lov", "Sana"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ordersSheet, cell, header); err != nil {
			return nil, err
		}
	}

	total := 0
	for i, order := range orders {
		row := i + 2
		payment := "Naqd"
		if order.PaymentMethod == entity.PaymentCard {
			payment = "Karta"
		}
		values := []any{
			i + 1,
			order.ProductName,
			order.CustomerName,
			order.Phone,
			order.Address,
			order.AgreedPrice,
			payment,
			order.Timestamp.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(ordersSheet, cell, value); err != nil {
				return nil, err
			}
		}
		total += order.AgreedPrice
	}

	// Yakuniy qator: jami tushum
	sumRow := len(orders) + 3
	if err := f.SetCellValue(ordersSheet, fmt.Sprintf("A%d", sumRow), "JAMI"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(ordersSheet, fmt.Sprintf("F%d", sumRow), total); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("hisobotni yozib bo'lmadi: %w", err)
	}

	return buf.Bytes(), nil
}
