package commands

import (
	"errors"
	"maps"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSendNotificationCommandIsNotConstructed = errors.New(
	"SendNotificationCommand must be created via NewSendNotificationCommand constructor",
)

// SendNotificationCommand sends an arbitrary message to every device of one user.
// Icon, badge and data are optional; blanks fall back to the dispatch defaults.
type SendNotificationCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	title  string
	body   string
	icon   string
	badge  string
	data   map[string]string

	guard guard.ConstructorGuard
}

func NewSendNotificationCommand(
	userID kernel.UUID,
	title, body, icon, badge string,
	data map[string]string,
) (SendNotificationCommand, error) {
	cmd := SendNotificationCommand{
		icon:  strings.TrimSpace(icon),
		badge: strings.TrimSpace(badge),
		data:  maps.Clone(data),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setTitle(title),
		cmd.setBody(body),
	); err != nil {
		return SendNotificationCommand{}, err
	}

	return cmd, nil
}

func (c SendNotificationCommand) Validate() error {
	return c.guard.Validate(ErrSendNotificationCommandIsNotConstructed)
}

func (c SendNotificationCommand) UserID() kernel.UUID {
	return c.userID
}

func (c SendNotificationCommand) Title() string {
	return c.title
}

func (c SendNotificationCommand) Body() string {
	return c.body
}

func (c SendNotificationCommand) Icon() string {
	return c.icon
}

func (c SendNotificationCommand) Badge() string {
	return c.badge
}

func (c SendNotificationCommand) Data() map[string]string {
	return maps.Clone(c.data)
}

func (c *SendNotificationCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *SendNotificationCommand) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	c.title = title
	return nil
}

func (c *SendNotificationCommand) setBody(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	c.body = body
	return nil
}
