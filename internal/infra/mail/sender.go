package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<html>
<body>
	<p>Hi {{.FirstName}},</p>
	<p>We received the application for <strong>{{.BusinessName}}</strong>.
	Our team will review it and reach out with next steps.</p>
	<p>— The Merchant Leads Team</p>
</body>
</html>`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendConfirmation(to, firstName, businessName string) error {
	data := ConfirmationEmailData{
		FirstName:    firstName,
		BusinessName: businessName,
	}

	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render confirmation template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("We received your application for %s", businessName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}
