package mailer

import (
	"embed"
	"errors"
)

const (
	FromName            = "DilJourney"
	maxRetires          = 3
	UserWelcomeTemplate = "user_welcome.tmpl"
)

//go:embed "templates"
var FS embed.FS

var ErrTemplate = errors.New("mail template could not be rendered")

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
