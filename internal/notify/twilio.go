package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends through two fixed sender identities: a plain SMS
// number and a WhatsApp-enabled number. WhatsApp addresses carry the
// channel prefix on both sides of the message.
type TwilioSender struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
}

func NewTwilioSender(accountSID, authToken, smsFrom, whatsappFrom string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client:       client,
		smsFrom:      smsFrom,
		whatsappFrom: whatsappFrom,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string, ch Channel) error {
	from := s.smsFrom
	if ch == ChannelWhatsApp {
		from = "whatsapp:" + s.whatsappFrom
		to = "whatsapp:" + to
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}
