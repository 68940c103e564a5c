package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, load *domain.Load) error {
	if load.InvoiceEmail == "" {
		return domain.ErrMissingInvoiceEmail
	}

	subject := fmt.Sprintf("Invoice for load %s: %s %s to %s %s",
		load.LoadNumber, load.OriginCity, load.OriginState, load.DestCity, load.DestState)
	htmlBody := buildInvoiceHTML(load)
	textBody := fmt.Sprintf(
		"Invoice for load %s\n\nBroker: %s\nPickup: %s (%s %s)\nDelivery: %s (%s %s)\nRate: $%.2f\n\nPlease remit payment per the agreed terms.\n\n%s",
		load.LoadNumber, load.BrokerCompany,
		load.PickupDate, load.OriginCity, load.OriginState,
		load.DeliveryDate, load.DestCity, load.DestState,
		load.BookedRate, s.fromName)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{load.InvoiceEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildInvoiceHTML(load *domain.Load) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice for load %s</h2>
  <table style="width: 100%%; border-collapse: collapse;">
    <tr><td style="padding: 6px 0; color: #666;">Broker</td><td>%s</td></tr>
    <tr><td style="padding: 6px 0; color: #666;">Pickup</td><td>%s &mdash; %s %s</td></tr>
    <tr><td style="padding: 6px 0; color: #666;">Delivery</td><td>%s &mdash; %s %s</td></tr>
    <tr><td style="padding: 6px 0; color: #666;">Rate</td><td>$%.2f</td></tr>
  </table>
  <p>Please remit payment per the agreed terms.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Luxon TMS</p>
</body>
</html>`,
		load.LoadNumber, load.BrokerCompany,
		load.PickupDate, load.OriginCity, load.OriginState,
		load.DeliveryDate, load.DestCity, load.DestState,
		load.BookedRate)
}
