// Package tokenrepo persists push registrations in "notification_tokens".
package tokenrepo

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TokenDTO is one row of "notification_tokens". The token value is unique;
// a device re-registering under another user moves the row.
type TokenDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Token      string         `gorm:"column:token;type:text;not null;uniqueIndex"`
	UserID     uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	DeviceInfo datatypes.JSON `gorm:"column:device_info"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;not null;index"`
}

func (TokenDTO) TableName() string {
	return "notification_tokens"
}

func fromDomain(t *notification.Token) (TokenDTO, error) {
	dto := TokenDTO{
		ID:        t.ID().Google(),
		Token:     t.Value(),
		UserID:    t.UserID().Google(),
		UpdatedAt: t.UpdatedAt(),
	}

	if info := t.DeviceInfo(); len(info) > 0 {
		raw, err := json.Marshal(info)
		if err != nil {
			return TokenDTO{}, err
		}
		dto.DeviceInfo = datatypes.JSON(raw)
	}

	return dto, nil
}

func toDomain(dto TokenDTO, info notification.DeviceInfo) (*notification.Token, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromGoogle(dto.UserID)
	if err != nil {
		return nil, err
	}

	return notification.RestoreToken(id, dto.Token, userID, info, dto.UpdatedAt)
}

// decodeDeviceInfo returns nil info for an empty column and for anything
// that is not a JSON object.
func decodeDeviceInfo(raw datatypes.JSON) (notification.DeviceInfo, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var info notification.DeviceInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, err
	}
	return info, nil
}
