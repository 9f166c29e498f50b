package email

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"edulearn/internal/application/subscription/usecases"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/logger"
)

const receiptDateLayout = "02/01/2006"

// ReceiptNotifier sends the payment receipt after a subscription is activated.
type ReceiptNotifier struct {
	sender   Sender
	renderer *markdownRenderer
	printer  *message.Printer
	logger   logger.Interface
}

func NewReceiptNotifier(sender Sender, log logger.Interface) *ReceiptNotifier {
	return &ReceiptNotifier{
		sender:   sender,
		renderer: newMarkdownRenderer(),
		printer:  message.NewPrinter(language.Vietnamese),
		logger:   log,
	}
}

func (n *ReceiptNotifier) SendPaymentReceipt(ctx context.Context, receipt usecases.PaymentReceipt) error {
	plain := n.composeMarkdown(receipt)

	htmlBody, err := n.renderer.render(plain)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Payment receipt: %s (%s)", receipt.PlanName, receipt.BillingCycle)
	if err := n.sender.Send(ctx, receipt.To, subject, htmlBody, plain); err != nil {
		return fmt.Errorf("failed to send receipt for order %s: %w", receipt.OrderCode, err)
	}

	n.logger.Infow("payment receipt sent", "order_code", receipt.OrderCode, "to", receipt.To)
	return nil
}

// formatAmount renders whole VND with Vietnamese digit grouping, e.g. 1.000.000 ₫.
func (n *ReceiptNotifier) formatAmount(amount int64, currency string) string {
	if currency == "" || strings.EqualFold(currency, "VND") {
		return n.printer.Sprintf("%d ₫", amount)
	}
	return n.printer.Sprintf("%d %s", amount, currency)
}

func (n *ReceiptNotifier) composeMarkdown(r usecases.PaymentReceipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Thank you for your payment\n\n")
	fmt.Fprintf(&b, "Your subscription for **%s** is now active.\n\n", escapeMarkdown(r.SchoolName))
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Plan | %s |\n", escapeMarkdown(r.PlanName))
	fmt.Fprintf(&b, "| Billing cycle | %s |\n", r.BillingCycle)
	fmt.Fprintf(&b, "| Amount | %s |\n", n.formatAmount(r.Amount, r.Currency))
	fmt.Fprintf(&b, "| Order code | %s |\n", r.OrderCode)
	fmt.Fprintf(&b, "| Paid at | %s |\n", biztime.FormatInBizTimezone(r.PaidAt, receiptDateLayout+" 15:04"))
	fmt.Fprintf(&b, "| Period | %s to %s |\n\n",
		biztime.FormatInBizTimezone(r.StartDate, receiptDateLayout),
		biztime.FormatInBizTimezone(r.EndDate, receiptDateLayout))
	fmt.Fprintf(&b, "Keep this email for your records.\n")
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`|`, `\|`, `*`, `\*`, `_`, `\_`, "`", "\\`", `<`, `&lt;`, `>`, `&gt;`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
