package payrun

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// buildPayslipPDF renders a minimal single-page PDF without an external
// renderer. Finance systems downstream only need a printable artifact.
func buildPayslipPDF(run *PayRun, entry *PayRunEntry) ([]byte, error) {
	lines := []string{
		"PAYSLIP",
		fmt.Sprintf("Employee: %s", entry.EmployeeName),
		fmt.Sprintf("Period: %s to %s",
			run.PeriodStart.Format("2006-01-02"),
			run.PeriodEnd.Format("2006-01-02"),
		),
		fmt.Sprintf("Gross pay: %s %.2f", entry.Currency, entry.GrossPay),
	}

	if len(entry.Deductions) > 0 {
		var deductions map[string]float64
		if json.Unmarshal(entry.Deductions, &deductions) == nil {
			// Stable order keeps re-renders of the same entry byte-identical.
			names := make([]string, 0, len(deductions))
			for name := range deductions {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				lines = append(lines, fmt.Sprintf("  %s: -%.2f", name, deductions[name]))
			}
		}
	}

	lines = append(lines,
		fmt.Sprintf("Total deductions: %s %.2f", entry.Currency, entry.TotalDeductions),
		fmt.Sprintf("Net pay: %s %.2f", entry.Currency, entry.NetPay),
	)
	if entry.ExchangeRate != 1 {
		lines = append(lines, fmt.Sprintf("Net pay (local): %.2f at rate %.4f",
			entry.NetPayLocal, entry.ExchangeRate))
	}

	return renderSimplePDF(lines)
}

func renderSimplePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
