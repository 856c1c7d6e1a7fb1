package mailer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/mail.v2"
)

type fakeSender struct {
	fails    int
	calls    int
	rendered string
}

func (f *fakeSender) DialAndSend(msgs ...*gomail.Message) error {
	f.calls++
	if f.calls <= f.fails {
		return errors.New("connection refused")
	}
	var sb strings.Builder
	for _, m := range msgs {
		_, _ = m.WriteTo(&sb)
	}
	f.rendered = sb.String()
	return nil
}

type welcome struct {
	Username   string
	Mood       string
	ExploreURL string
}

func TestSMTPMailerSend(t *testing.T) {
	fake := &fakeSender{fails: 1}
	m := &SMTPMailer{fromEmail: "hello@diljourney.app", dialer: fake}

	status, err := m.Send(UserWelcomeTemplate, "Asha", "asha@example.com", welcome{
		Username: "Asha", Mood: "foodie", ExploreURL: "http://localhost:3000",
	})
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, 2, fake.calls, "retried after the first failure")
	assert.Contains(t, fake.rendered, "Welcome to DilJourney, Asha!")
	assert.Contains(t, fake.rendered, "foodie")
}

func TestSMTPMailerGivesUp(t *testing.T) {
	fake := &fakeSender{fails: maxRetires}
	m := &SMTPMailer{fromEmail: "hello@diljourney.app", dialer: fake}

	status, err := m.Send(UserWelcomeTemplate, "Asha", "asha@example.com", welcome{Username: "Asha"})
	assert.Error(t, err)
	assert.Equal(t, -1, status)
	assert.Equal(t, maxRetires, fake.calls)
}

func TestSMTPMailerUnknownTemplate(t *testing.T) {
	m := &SMTPMailer{fromEmail: "hello@diljourney.app", dialer: &fakeSender{}}
	_, err := m.Send("missing.tmpl", "Asha", "asha@example.com", nil)
	assert.ErrorIs(t, err, ErrTemplate)
}
