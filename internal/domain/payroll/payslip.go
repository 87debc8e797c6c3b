package payroll

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"staffpay/internal/domain/employee"
	cryptoutil "staffpay/internal/platform/crypto"
)

// PayslipWriter renders payroll snapshots to PDF files under Dir, encrypted
// with AES-GCM when Crypto is configured.
type PayslipWriter struct {
	Dir    string
	Crypto *cryptoutil.Service
}

func NewPayslipWriter(dir string, crypto *cryptoutil.Service) *PayslipWriter {
	return &PayslipWriter{Dir: dir, Crypto: crypto}
}

func RenderPayslip(p Payroll, e employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %d", p.Month, p.Year), false)
	pdf.SetSubject(e.Details(), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", e.Name, e.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", e.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee type: %s", e.Kind()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", p.Month, p.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %.2f", p.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %.2f", p.Allowances))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", p.Deductions))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %.2f", p.NetSalary))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Paid %s, status %s", p.PaymentDate.Format("2006-01-02"), p.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the payslip and returns the path of the stored file. Files
// are sealed and suffixed .enc when Crypto is configured.
func (w *PayslipWriter) Write(p Payroll, e employee.Employee) (string, error) {
	data, err := RenderPayslip(p, e)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", err
	}

	filePath := filepath.Join(w.Dir, p.ID+".pdf")
	if w.Crypto.Configured() {
		sealed, err := w.Crypto.Seal(data)
		if err != nil {
			return "", err
		}
		filePath += ".enc"
		return filePath, os.WriteFile(filePath, sealed, 0o600)
	}
	return filePath, os.WriteFile(filePath, data, 0o644)
}

// Read loads a stored payslip, opening it when sealed.
func (w *PayslipWriter) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.Crypto.Open(data)
}

// GeneratePayslipPDF renders the stored snapshot and returns the decrypted PDF bytes.
func (s *Service) GeneratePayslipPDF(ctx context.Context, payrollID string) ([]byte, error) {
	if s.payslips == nil {
		return nil, ErrPayslipsUnavailable
	}
	p, err := s.GetPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.FindByID(ctx, p.EmployeeID)
	if err != nil {
		return nil, err
	}
	path, err := s.payslips.Write(p, emp)
	if err != nil {
		return nil, err
	}
	return s.payslips.Read(path)
}
