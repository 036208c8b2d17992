package postgres

import (
	"context"
	"fmt"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/tokenrepo"

	"gorm.io/gorm"
)

// OrderChangesChannel is the LISTEN/NOTIFY channel fed by the pedidos trigger.
const OrderChangesChannel = "order_changes"

// Migrate creates or updates the order store and token registry tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&orderrepo.OrderDTO{}, &tokenrepo.TokenDTO{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// InstallChangeTrigger makes every insert and update of pedidos publish the
// row images on OrderChangesChannel, in the same shape database webhooks use.
// The notification is sent on commit, so rolled back writes never notify.
func InstallChangeTrigger(ctx context.Context, db *gorm.DB) error {
	statements := []string{
		fmt.Sprintf(`
CREATE OR REPLACE FUNCTION notify_order_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('%s', json_build_object(
		'change_id', gen_random_uuid(),
		'type', TG_OP,
		'table', TG_TABLE_NAME,
		'record', row_to_json(NEW),
		'old_record', CASE WHEN TG_OP = 'UPDATE' THEN row_to_json(OLD) END
	)::text);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`, OrderChangesChannel),
		`DROP TRIGGER IF EXISTS pedidos_notify_change ON pedidos`,
		`CREATE TRIGGER pedidos_notify_change
	AFTER INSERT OR UPDATE ON pedidos
	FOR EACH ROW EXECUTE FUNCTION notify_order_change()`,
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("install change trigger: %w", err)
			}
		}
		return nil
	})
}
