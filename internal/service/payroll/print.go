package payroll

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/currency"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/duration"
	"github.com/jung-kurt/gofpdf"
)

// PayslipRenderer draws a payslip as a single A4 PDF page.
type PayslipRenderer struct {
	locale   string
	fallback *currency.Formatter
}

func NewPayslipRenderer(defaultCurrency, locale string) (*PayslipRenderer, error) {
	f, err := currency.NewFormatter(defaultCurrency, locale)
	if err != nil {
		return nil, err
	}
	return &PayslipRenderer{locale: locale, fallback: f}, nil
}

func (r *PayslipRenderer) formatterFor(code string) *currency.Formatter {
	if code == "" || code == r.fallback.Code() {
		return r.fallback
	}
	f, err := currency.NewFormatter(code, r.locale)
	if err != nil {
		return r.fallback
	}
	return f
}

func (r *PayslipRenderer) Render(p payroll.Payslip, w io.Writer) error {
	money := r.formatterFor(p.Currency)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	name := p.EmployeeID
	if p.EmployeeName != nil && *p.EmployeeName != "" {
		name = *p.EmployeeName
	}
	pdf.Cell(0, 7, tr(fmt.Sprintf("Employee: %s", name)))
	pdf.Ln(6)
	if p.EmployeeCode != nil && *p.EmployeeCode != "" {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Employee Code: %s", *p.EmployeeCode)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", p.PayPeriod))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", p.Status))
	pdf.Ln(10)

	section := func(title string, lines employee.Components, totalLabel string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range lines {
			pdf.CellFormat(120, 7, tr(line.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(60, 7, tr(money.Format(line.Amount)), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(120, 7, totalLabel, "T", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(money.Format(lines.Total())), "T", 1, "R", false, 0, "")
		pdf.Ln(4)
	}
	section("Earnings", p.Earnings, "Gross Salary")
	section("Deductions", p.Deductions, "Total Deductions")

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 9, "Net Salary", "TB", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, tr(money.Format(p.NetSalary)), "TB", 1, "R", false, 0, "")
	pdf.Ln(8)

	att := p.AttendanceSummary
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Days worked: %d   Late days: %d   Total lateness: %s",
		att.DaysWorked, att.LateDays, duration.Format(att.TotalLatenessMinutes)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("KPI score: %.2f", p.PerformanceSummary.KPIScore))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return nil
}
