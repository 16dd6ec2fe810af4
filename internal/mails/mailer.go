package mails

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

type Mailer struct {
	Dialer       *mail.Dialer
	Sender       string
	RetriesCount int
}

func New(host string, port int, timeout time.Duration, username, password, sender string, retriesCount int) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	return &Mailer{
		Dialer:       dialer,
		Sender:       sender,
		RetriesCount: retriesCount,
	}
}

func parseEmailTmpl(tmplName string, tmplData any) (map[string]string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+tmplName)
	if err != nil {
		return nil, err
	}
	tmplPartials := map[string]string{
		"subject":   "",
		"plainBody": "",
		"htmlBody":  "",
	}
	for key := range tmplPartials {
		buff := new(bytes.Buffer)
		if err = tmpl.ExecuteTemplate(buff, key, tmplData); err != nil {
			return nil, err
		}
		tmplPartials[key] = buff.String()
	}
	return tmplPartials, nil
}

func (m *Mailer) Send(recipient string, tmplName string, tmplData any) error {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("Subject", tmplPartials["subject"])
	msg.SetBody("text/plain", tmplPartials["plainBody"])
	msg.AddAlternative("text/html", tmplPartials["htmlBody"])
	for i := 0; i < m.RetriesCount; i++ {
		err = m.Dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}

// ApiMailer delivers through an HTTP mail API instead of SMTP. The
// endpoint comes from config.
type ApiMailer struct {
	ApiUrl       string
	ApiToken     string
	Sender       string
	RetriesCount int
}

func (m *ApiMailer) Send(recipient string, tmplName string, tmplData any) error {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return err
	}
	sender := strings.SplitN(m.Sender, " ", 2)
	senderName, senderEmail := "", sender[0]
	if len(sender) == 2 {
		senderName, senderEmail = sender[0], sender[1]
	}
	payload, err := json.Marshal(map[string]any{
		"from":    map[string]string{"email": senderEmail, "name": senderName},
		"to":      []map[string]string{{"email": recipient}},
		"subject": tmplPartials["subject"],
		"text":    tmplPartials["plainBody"],
		"html":    tmplPartials["htmlBody"],
	})
	if err != nil {
		return err
	}
	client := http.Client{}
	var resp *http.Response
	var lastErr error
	for i := 0; i < m.RetriesCount; i++ {
		req, err := http.NewRequest(http.MethodPost, m.ApiUrl, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Add("Authorization", "Bearer "+m.ApiToken)
		req.Header.Set("Content-Type", "application/json")
		resp, lastErr = client.Do(req)
		if lastErr == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if resp == nil {
		return lastErr
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var bodyParsed map[string]any
	if err := json.Unmarshal(body, &bodyParsed); err == nil {
		if _, ok := bodyParsed["errors"]; ok {
			return fmt.Errorf("failed to send email: %s", bodyParsed["errors"])
		}
	}
	return nil
}
