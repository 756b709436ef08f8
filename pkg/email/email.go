package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	Enabled      bool
}

// ReceiptLine is one product line on a sale receipt
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

// ReceiptData holds everything needed to render a sale receipt
type ReceiptData struct {
	CustomerName string
	SaleID       string
	SaleDate     time.Time
	Lines        []ReceiptLine
	Total        float64
	ShopName     string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendSaleReceipt sends a receipt email for a completed checkout. When email
// sending is disabled in configuration it is a no-op.
func (s *EmailService) SendSaleReceipt(toEmail string, data ReceiptData) error {
	if !s.config.Enabled {
		return nil
	}

	if data.ShopName == "" {
		data.ShopName = s.config.FromName
	}

	htmlContent, err := s.renderReceiptEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Boleta de venta - %s", data.ShopName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderReceiptEmail renders the sale receipt email template
func (s *EmailService) renderReceiptEmail(data ReceiptData) (string, error) {
	tmpl, err := template.New("sale_receipt").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"date":  func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	}).Parse(saleReceiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// saleReceiptTemplate is the HTML template for sale receipt emails
const saleReceiptTemplate = `
<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Boleta de Venta</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <!-- Header -->
                    <tr>
                        <td style="background: linear-gradient(135deg, #f093fb 0%, #f5576c 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.ShopName}}</h1>
                        </td>
                    </tr>

                    <!-- Content -->
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Boleta de Venta</h2>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hola {{.CustomerName}},
                            </p>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Gracias por tu compra del {{date .SaleDate}}. Este es el detalle de tu boleta <strong>{{.SaleID}}</strong>:
                            </p>

                            <!-- Line items -->
                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 0 0 20px 0;">
                                <tr>
                                    <th style="text-align: left; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e; font-size: 14px;">Producto</th>
                                    <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e; font-size: 14px;">Cant.</th>
                                    <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e; font-size: 14px;">Precio</th>
                                    <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e; font-size: 14px;">Subtotal</th>
                                </tr>
                                {{range .Lines}}
                                <tr>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568; font-size: 14px;">{{.ProductName}}</td>
                                    <td style="text-align: right; padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568; font-size: 14px;">{{.Quantity}}</td>
                                    <td style="text-align: right; padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568; font-size: 14px;">{{money .UnitPrice}}</td>
                                    <td style="text-align: right; padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568; font-size: 14px;">{{money .Subtotal}}</td>
                                </tr>
                                {{end}}
                                <tr>
                                    <td colspan="3" style="text-align: right; padding: 12px 8px; color: #1a1a2e; font-size: 16px; font-weight: 600;">Total</td>
                                    <td style="text-align: right; padding: 12px 8px; color: #1a1a2e; font-size: 16px; font-weight: 600;">{{money .Total}}</td>
                                </tr>
                            </table>

                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                Conserva este correo como comprobante de tu compra.
                            </p>
                        </td>
                    </tr>

                    <!-- Footer -->
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">
                                Este correo fue enviado por {{.ShopName}}
                            </p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">
                                © 2026 {{.ShopName}}. Todos los derechos reservados.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
