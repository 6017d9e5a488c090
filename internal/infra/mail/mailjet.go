package mail

import (
	"context"
	"fmt"

	mailjet "github.com/mailjet/mailjet-apiv3-go"

	"villadesk/internal/app/handlers/booking"
)

// MailjetSender delivers booking confirmations through the Mailjet API.
type MailjetSender struct {
	Client      *mailjet.Client
	FromAddress string
	FromName    string
}

func NewMailjetSender(apiKey, secretKey, fromAddress, fromName string) *MailjetSender {
	return &MailjetSender{
		Client:      mailjet.NewMailjetClient(apiKey, secretKey),
		FromAddress: fromAddress,
		FromName:    fromName,
	}
}

func (s *MailjetSender) SendBookingConfirmation(_ context.Context, msg booking.ConfirmationMessage) error {
	const layout = "02 Jan 2006"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking at %s is confirmed.\n\nCheck-in: %s\nCheck-out: %s\nNights: %d\nTotal: %s\nBalance due: %s\n\nWe look forward to hosting you.",
		msg.ClientName, msg.VillaName,
		msg.CheckIn.Format(layout), msg.CheckOut.Format(layout),
		msg.Nights, msg.Total, msg.Pending,
	)
	messages := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{{
		From: &mailjet.RecipientV31{
			Email: s.FromAddress,
			Name:  s.FromName,
		},
		To: &mailjet.RecipientsV31{{
			Email: msg.To,
			Name:  msg.ClientName,
		}},
		Subject:  fmt.Sprintf("Booking confirmed: %s", msg.VillaName),
		TextPart: body,
	}}}
	_, err := s.Client.SendMailV31(&messages)
	return err
}
