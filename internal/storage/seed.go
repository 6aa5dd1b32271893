package storage

import (
	"context"
	"fmt"
)

// BootstrapAdmin describes the account created on first run when the
// admin_users table is empty. The password arrives pre-hashed so this
// package stays free of crypto concerns.
type BootstrapAdmin struct {
	Email        string
	Name         string
	PasswordHash string
}

// SeedDefaults populates an empty database: the default site-settings row
// and the bootstrap admin account. It is safe to call on every startup.
func (s *Store) SeedDefaults(ctx context.Context, admin BootstrapAdmin) error {
	var settingsCount int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM site_settings`).Scan(&settingsCount); err != nil {
		return fmt.Errorf("counting site settings: %w", err)
	}
	if settingsCount == 0 {
		defaults := DefaultSettings
		if _, err := s.SaveSettings(ctx, &defaults); err != nil {
			return fmt.Errorf("seeding site settings: %w", err)
		}
	}

	var adminCount int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&adminCount); err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if adminCount == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO admin_users (email, full_name, password_hash) VALUES (?, ?, ?)`,
			admin.Email, admin.Name, admin.PasswordHash)
		if err != nil {
			return fmt.Errorf("seeding bootstrap admin: %w", err)
		}
	}

	return nil
}
