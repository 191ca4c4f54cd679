package utils

import (
	"fmt"
	"strings"

	"resto-backend/models"
)

// FormatIDR renders an amount as Indonesian rupiah with dot grouping,
// e.g. 400000 -> "Rp 400.000".
func FormatIDR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	out := "Rp " + strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

const emailShell = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: sans-serif; color: #333; }
.container { max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; }
.header { text-align: center; padding-bottom: 20px; border-bottom: 1px solid #ddd; }
.content { padding: 20px 0; }
.footer { text-align: center; font-size: 0.9em; color: #888; margin-top: 20px; }
.details { width: 100%%; margin-top: 20px; }
.details td { padding: 8px 0; }
.details .label { font-weight: bold; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>%s</h1></div>
  <div class="content">%s</div>
  <div class="footer"><p>Thank you for choosing Watee Baroesa.</p></div>
</div>
</body>
</html>`

func detailRows(pairs [][2]string) string {
	var sb strings.Builder
	sb.WriteString(`<table class="details">`)
	for _, p := range pairs {
		sb.WriteString(fmt.Sprintf(`<tr><td class="label">%s:</td><td>%s</td></tr>`, p[0], p[1]))
	}
	sb.WriteString(`</table>`)
	return sb.String()
}

// RenderPendingInvoiceEmail is sent right after a booking is created and
// asks the guest to transfer the deposit.
func RenderPendingInvoiceEmail(r *models.Reservation) (subject, plain, html string) {
	subject = fmt.Sprintf("Payment instructions for reservation %s", r.ReferenceCode)

	plain = fmt.Sprintf(
		"Hello %s,\n\n"+
			"We received your reservation for %d guest(s) on %s at %s.\n"+
			"Total bill: %s\n"+
			"Deposit due (%d%%): %s\n\n"+
			"Please transfer the deposit or pay via QRIS and upload your proof of payment on the reservation status page. "+
			"Your booking stays Pending until our staff verifies the payment.\n\n"+
			"Reference: %s\n",
		r.Name, r.Guests, r.Date, r.Time,
		FormatIDR(r.TotalBill), r.DepositPercentage, FormatIDR(r.DepositAmount),
		r.ReferenceCode,
	)

	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>We received your reservation. To hold your table, please pay the deposit and upload your proof of payment on the reservation status page.</p>%s
<p>Your booking stays <strong>Pending</strong> until our staff verifies the payment.</p>`,
		r.Name,
		detailRows([][2]string{
			{"Reference", r.ReferenceCode},
			{"Date", r.Date + " at " + r.Time},
			{"Guests", fmt.Sprintf("%d", r.Guests)},
			{"Total Bill", FormatIDR(r.TotalBill)},
			{"Deposit Due", fmt.Sprintf("%s (%d%%)", FormatIDR(r.DepositAmount), r.DepositPercentage)},
		}),
	)
	html = fmt.Sprintf(emailShell, "Reservation Received", body)
	return subject, plain, html
}

// RenderConfirmationEmail is sent once an admin confirms the booking.
func RenderConfirmationEmail(r *models.Reservation) (subject, plain, html string) {
	subject = fmt.Sprintf("Your reservation %s is confirmed", r.ReferenceCode)

	table := "Auto assign"
	if r.TableNumber != nil && *r.TableNumber != "" {
		table = *r.TableNumber
	}

	plain = fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your reservation is confirmed. We look forward to seeing you!\n\n"+
			"Reference: %s\nDate: %s at %s\nGuests: %d\nTable: %s\n",
		r.Name, r.ReferenceCode, r.Date, r.Time, r.Guests, table,
	)

	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>Your reservation is confirmed. We look forward to seeing you!</p>%s`,
		r.Name,
		detailRows([][2]string{
			{"Reference", r.ReferenceCode},
			{"Date", r.Date + " at " + r.Time},
			{"Guests", fmt.Sprintf("%d", r.Guests)},
			{"Table", table},
		}),
	)
	html = fmt.Sprintf(emailShell, "Reservation Confirmed", body)
	return subject, plain, html
}

// RenderInvoiceEmail is sent when the booking is fully paid.
func RenderInvoiceEmail(r *models.Reservation) (subject, plain, html string) {
	invoice := ""
	if r.InvoiceNumber != nil {
		invoice = *r.InvoiceNumber
	}
	subject = fmt.Sprintf("Invoice %s for reservation %s", invoice, r.ReferenceCode)

	plain = fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for your payment. Here is the invoice for your booking.\n\n"+
			"Invoice: %s\nReference: %s\nReservation Date: %s at %s\nTotal Amount: %s\n",
		r.Name, invoice, r.ReferenceCode, r.Date, r.Time, FormatIDR(r.TotalBill),
	)

	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>Thank you for your payment. Here is the invoice for your booking.</p>%s
<p>We look forward to seeing you!</p>`,
		r.Name,
		detailRows([][2]string{
			{"Invoice", invoice},
			{"Reference", r.ReferenceCode},
			{"Reservation Date", r.Date + " at " + r.Time},
			{"Total Amount", FormatIDR(r.TotalBill)},
		}),
	)
	html = fmt.Sprintf(emailShell, "Reservation Invoice", body)
	return subject, plain, html
}
