package commands

import (
	"errors"
	"maps"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRegisterTokenCommandIsNotConstructed = errors.New(
	"RegisterTokenCommand must be created via NewRegisterTokenCommand constructor",
)

// RegisterTokenCommand records a device's push registration for a user.
// Registering the same token again moves it to userID and refreshes it.
type RegisterTokenCommand struct { //nolint:recvcheck //using for validation
	token      string
	userID     kernel.UUID
	deviceInfo notification.DeviceInfo

	guard guard.ConstructorGuard
}

func NewRegisterTokenCommand(token string, userID kernel.UUID, deviceInfo notification.DeviceInfo) (RegisterTokenCommand, error) {
	cmd := RegisterTokenCommand{
		deviceInfo: maps.Clone(deviceInfo),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setToken(token),
		cmd.setUserID(userID),
	); err != nil {
		return RegisterTokenCommand{}, err
	}

	return cmd, nil
}

func (c RegisterTokenCommand) Validate() error {
	return c.guard.Validate(ErrRegisterTokenCommandIsNotConstructed)
}

func (c RegisterTokenCommand) Token() string {
	return c.token
}

func (c RegisterTokenCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterTokenCommand) DeviceInfo() notification.DeviceInfo {
	return maps.Clone(c.deviceInfo)
}

func (c *RegisterTokenCommand) setToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}
	c.token = token
	return nil
}

func (c *RegisterTokenCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}
