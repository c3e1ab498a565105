// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/order"
)

// Service renders order invoices as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice renders a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := invoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   o.OrderDate.Format("January 2, 2006"),
		StoreName:     s.config.App.Name,
		SupportEmail:  s.config.External.Email.FromEmail,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Address:       o.ShippingAddress,
		Currency:      o.Currency,
		Total:         formatCents(o.TotalPrice),
	}

	for _, item := range o.Items {
		data.Items = append(data.Items, invoiceLine{
			Name:      item.Name,
			SKU:       item.SKU,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: formatCents(item.UnitPrice),
			Total:     formatCents(item.TotalPrice),
		})
	}

	htmlContent, err := renderInvoiceHTML(data)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func formatCents(amount int64) string {
	return fmt.Sprintf("%.2f", float64(amount)/100)
}

func renderInvoiceHTML(data invoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}

	return buf.String(), nil
}

// invoiceData is the data passed to the invoice template. Money fields are
// preformatted strings so the template stays arithmetic-free.
type invoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	StoreName     string
	SupportEmail  string
	OrderNumber   string
	Status        string
	CustomerName  string
	CustomerEmail string
	Address       order.Address
	Currency      string
	Items         []invoiceLine
	Total         string
}

type invoiceLine struct {
	Name      string
	SKU       string
	Size      string
	Quantity  int
	UnitPrice string
	Total     string
}

const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .ship-to { margin-bottom: 30px; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; font-weight: bold; }
        .num-col { text-align: right; width: 80px; }
        .totals { float: right; width: 300px; }
        .totals table { width: 100%; border-collapse: collapse; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; }
        .total-row { font-size: 18px; font-weight: bold; border-top: 2px solid #333 !important; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.StoreName}}</h1>
            <p>{{.SupportEmail}}</p>
        </div>
        <div style="text-align: right;">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.OrderNumber}}</p>
            <p><strong>Status:</strong> {{.Status}}</p>
        </div>
    </div>

    <div class="ship-to">
        <div class="section-title">Ship To:</div>
        <p><strong>{{.CustomerName}}</strong></p>
        <p>{{.Address.AddressLine1}}</p>
        {{if .Address.AddressLine2}}<p>{{.Address.AddressLine2}}</p>{{end}}
        <p>{{.Address.City}}{{if .Address.State}}, {{.Address.State}}{{end}} {{.Address.PostalCode}}</p>
        <p>{{.Address.Country}}</p>
        {{if .Address.Phone}}<p>Phone: {{.Address.Phone}}</p>{{end}}
        <p>Email: {{.CustomerEmail}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th>SKU</th>
                <th>Size</th>
                <th class="num-col">Qty</th>
                <th class="num-col">Price</th>
                <th class="num-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td>{{.SKU}}</td>
                <td>{{.Size}}</td>
                <td class="num-col">{{.Quantity}}</td>
                <td class="num-col">{{.UnitPrice}} {{$.Currency}}</td>
                <td class="num-col">{{.Total}} {{$.Currency}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr class="total-row">
                <td style="text-align: right;">Total:</td>
                <td class="num-col">{{.Total}} {{.Currency}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for your order!</p>
        <p>Questions about this invoice? Contact us at {{.SupportEmail}}</p>
    </div>
</body>
</html>
`
