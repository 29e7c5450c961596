package controllers

import (
	"fmt"
	"io"
	"time"

	"potrack-app/config"
	"potrack-app/repositories"
	"potrack-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type ExportController struct {
	DB *gorm.DB
}

func NewExportController(DB *gorm.DB) *ExportController {
	return &ExportController{DB: DB}
}

var ordersHeaders = []string{"Production Order", "Work Center", "Quantity", "Type", "Remark", "Name", "Department", "Date & Time"}
var balanceHeaders = []string{"Production Order", "Work Center", "Remarks", "Total IN", "Total OUT", "Balance"}

// buildWorkbook menyusun dua sheet: log pergerakan dan balance report.
func buildWorkbook(rows []repositories.MovementRow, balances []services.BalanceSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	ordersSheet := "Production Orders"
	balanceSheet := "Balance Report"
	f.SetSheetName("Sheet1", ordersSheet)
	if _, err := f.NewSheet(balanceSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	loc := config.ReportLocation()

	for col, header := range ordersHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(ordersSheet, cell, header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ordersHeaders))
	f.SetCellStyle(ordersSheet, "A1", lastCol+"1", headerStyle)

	for i, row := range rows {
		remark := row.Remark
		if remark == "" {
			remark = "-"
		}
		name := row.UserName
		if name == "" {
			name = row.Username
		}
		department := row.UserDepartment
		if department == "" {
			department = "-"
		}

		rowNum := i + 2
		f.SetCellValue(ordersSheet, fmt.Sprintf("A%d", rowNum), row.ProductionOrder)
		f.SetCellValue(ordersSheet, fmt.Sprintf("B%d", rowNum), row.WorkCenterName)
		f.SetCellValue(ordersSheet, fmt.Sprintf("C%d", rowNum), row.Quantity)
		f.SetCellValue(ordersSheet, fmt.Sprintf("D%d", rowNum), row.OrderType)
		f.SetCellValue(ordersSheet, fmt.Sprintf("E%d", rowNum), remark)
		f.SetCellValue(ordersSheet, fmt.Sprintf("F%d", rowNum), name)
		f.SetCellValue(ordersSheet, fmt.Sprintf("G%d", rowNum), department)
		f.SetCellValue(ordersSheet, fmt.Sprintf("H%d", rowNum),
			row.CreatedAt.In(loc).Format("2006-01-02 15:04:05")+" "+config.ReportTZLabel)
	}

	for col, header := range balanceHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(balanceSheet, cell, header)
	}
	lastCol, _ = excelize.ColumnNumberToName(len(balanceHeaders))
	f.SetCellStyle(balanceSheet, "A1", lastCol+"1", headerStyle)

	for i, item := range balances {
		rowNum := i + 2
		f.SetCellValue(balanceSheet, fmt.Sprintf("A%d", rowNum), item.ProductionOrder)
		f.SetCellValue(balanceSheet, fmt.Sprintf("B%d", rowNum), item.WorkCenterName)
		f.SetCellValue(balanceSheet, fmt.Sprintf("C%d", rowNum), item.RemarksText)
		f.SetCellValue(balanceSheet, fmt.Sprintf("D%d", rowNum), item.TotalIn)
		f.SetCellValue(balanceSheet, fmt.Sprintf("E%d", rowNum), item.TotalOut)
		f.SetCellValue(balanceSheet, fmt.Sprintf("F%d", rowNum), item.Balance)
	}

	for _, sheet := range []string{ordersSheet, balanceSheet} {
		if err := autoFitColumns(f, sheet); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// autoFitColumns lebarkan kolom mengikuti isi, maksimal 50
func autoFitColumns(f *excelize.File, sheet string) error {
	cols, err := f.GetCols(sheet)
	if err != nil {
		return err
	}

	for i, col := range cols {
		maxLength := 0
		for _, cell := range col {
			if len(cell) > maxLength {
				maxLength = len(cell)
			}
		}

		width := float64(maxLength + 2)
		if width > 50 {
			width = 50
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	return nil
}

func (c *ExportController) workbookForUser(ctx *fiber.Ctx, filter repositories.OrderFilter, adminScope bool) (*excelize.File, error) {
	order_repo := repositories.NewOrderRepository(c.DB)

	isAdmin, _ := ctx.Locals("isAdmin").(bool)
	department, _ := ctx.Locals("department").(string)

	var rows []repositories.MovementRow
	var err error
	if !adminScope && !isAdmin && department != "" {
		rows, err = order_repo.SearchForDepartment(filter, department)
	} else {
		rows, err = order_repo.Search(filter)
	}
	if err != nil {
		return nil, err
	}

	balances := services.SummarizeBalances(rows, false, config.ReportLocation())
	return buildWorkbook(rows, balances)
}

func writeWorkbook(ctx *fiber.Ctx, f *excelize.File, prefix string) error {
	filename := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("Failed to generate Excel")
	}
	return nil
}

// ExportExcel streams the two-sheet report. Non-admin users with a department
// only get rows authored by that department.
func (c *ExportController) ExportExcel(ctx *fiber.Ctx) error {
	f, err := c.workbookForUser(ctx, filterFromQuery(ctx), false)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return writeWorkbook(ctx, f, "production_orders_report")
}

// AdminExportExcel streams the report over the full ledger.
func (c *ExportController) AdminExportExcel(ctx *fiber.Ctx) error {
	f, err := c.workbookForUser(ctx, filterFromQuery(ctx), true)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return writeWorkbook(ctx, f, "production_orders_with_balance")
}

// EmailReport sends the workbook as an attachment to the given recipients.
func (c *ExportController) EmailReport(ctx *fiber.Ctx) error {
	var payload struct {
		To      []string `json:"to" validate:"required,min=1,dive,email"`
		Subject string   `json:"subject"`
	}

	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if config.SMTPHost == "" || config.SMTPSender == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "SMTP is not configured",
		})
	}

	f, err := c.workbookForUser(ctx, filterFromQuery(ctx), true)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	subject := payload.Subject
	if subject == "" {
		subject = "Production Orders Report"
	}
	filename := fmt.Sprintf("production_orders_report_%s.xlsx", time.Now().Format("20060102_150405"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", payload.To...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", `
		<html>
			<body>
				<h3>Production order report attached</h3>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	}))

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to send report email",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Report emailed successfully",
		"data":    fiber.Map{"recipients": payload.To},
	})
}
