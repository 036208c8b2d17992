package tokenrepo

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTokenRepository implements ports.TokenRepository using GORM. Listing
// skips rows that do not restore to a valid token, so one corrupt row never
// blocks a broadcast.
type GormTokenRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

type Option func(*GormTokenRepository)

// WithLogger sets the logger that reports skipped rows.
func WithLogger(logger *slog.Logger) Option {
	return func(r *GormTokenRepository) {
		if logger != nil {
			r.logger = logger.With("component", "token_repository")
		}
	}
}

func NewGormTokenRepository(db *gorm.DB, opts ...Option) *GormTokenRepository {
	r := &GormTokenRepository{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Upsert inserts the registration or, on a token conflict, moves it to the
// new owner and refreshes device info and updated_at. The row id is kept.
func (r *GormTokenRepository) Upsert(ctx context.Context, token *notification.Token) error {
	if err := token.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(token)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_info", "updated_at"}),
	}).Create(&dto).Error
}

func (r *GormTokenRepository) ListAll(ctx context.Context) ([]*notification.Token, error) {
	var dtos []TokenDTO
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(dtos), nil
}

func (r *GormTokenRepository) ListByUser(ctx context.Context, userID kernel.UUID) ([]*notification.Token, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TokenDTO
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Google()).
		Order("updated_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(dtos), nil
}

// DeleteByTokens is a single statement; missing values are ignored.
func (r *GormTokenRepository) DeleteByTokens(ctx context.Context, values []string) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Where("token IN ?", values).Delete(&TokenDTO{})
	return result.RowsAffected, result.Error
}

func (r *GormTokenRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&TokenDTO{})
	return result.RowsAffected, result.Error
}

func (r *GormTokenRepository) toDomainList(dtos []TokenDTO) []*notification.Token {
	tokens := make([]*notification.Token, 0, len(dtos))
	for _, dto := range dtos {
		info, err := decodeDeviceInfo(dto.DeviceInfo)
		if err != nil {
			r.logger.Warn("Ignoring unreadable device info", "id", dto.ID, "error", err)
		}

		t, err := toDomain(dto, info)
		if err != nil {
			r.logger.Warn("Skipping invalid token row",
				"id", dto.ID,
				"token", notification.Shorten(dto.Token),
				"error", err,
			)
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
