package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

// ErrLastAdmin is returned when deleting the only remaining admin account.
var ErrLastAdmin = errors.New("cannot delete the last admin account")

const adminColumns = `id, email, full_name, password_hash, created_at, updated_at`

// GetAdminByEmail returns the admin with the given email, or ErrNotFound.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE email = ? LIMIT 1`, email)
	return scanAdmin(row.Scan)
}

// GetAdmin returns the admin with the given ID, or ErrNotFound.
func (s *Store) GetAdmin(ctx context.Context, id int64) (*models.AdminUser, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE id = ?`, id)
	return scanAdmin(row.Scan)
}

// GetAdmins returns all admin accounts ordered by creation.
func (s *Store) GetAdmins(ctx context.Context) ([]models.AdminUser, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying admins: %w", err)
	}
	defer rows.Close()

	admins := []models.AdminUser{}
	for rows.Next() {
		admin, err := scanAdmin(rows.Scan)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *admin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating admins: %w", err)
	}
	return admins, nil
}

// CreateAdmin inserts an admin account and returns the stored row.
func (s *Store) CreateAdmin(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_users (email, full_name, password_hash) VALUES (?, ?, ?)`,
		admin.Email, admin.Name, admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin id: %w", err)
	}
	return s.GetAdmin(ctx, id)
}

// UpdateAdminProfile changes an admin's email and display name. Returns
// ErrNotFound when the ID does not exist.
func (s *Store) UpdateAdminProfile(ctx context.Context, id int64, email, name string) (*models.AdminUser, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE admin_users
			SET email = ?, full_name = ?, updated_at = datetime('now')
		 WHERE id = ?`, email, name, id)
	if err != nil {
		return nil, fmt.Errorf("updating admin %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetAdmin(ctx, id)
}

// UpdateAdminPassword replaces an admin's password hash.
func (s *Store) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE admin_users
			SET password_hash = ?, updated_at = datetime('now')
		 WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating admin password %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AdminEmailTaken reports whether another admin already uses the email.
func (s *Store) AdminEmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM admin_users WHERE email = ? AND id <> ? LIMIT 1`,
		email, excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking admin email: %w", err)
	}
	return true, nil
}

// DeleteAdmin removes an admin account. The last remaining account cannot be
// deleted, since that would lock everyone out of the console.
func (s *Store) DeleteAdmin(ctx context.Context, id int64) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if count <= 1 {
		return ErrLastAdmin
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM admin_users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting admin %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateContactMessage records a contact-form submission.
func (s *Store) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message) VALUES (?, ?, ?)`,
		msg.Name, msg.Email, msg.Message)
	if err != nil {
		return 0, fmt.Errorf("creating contact message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting contact message id: %w", err)
	}
	return id, nil
}

func scanAdmin(scan func(dest ...any) error) (*models.AdminUser, error) {
	var (
		admin     models.AdminUser
		createdAt string
		updatedAt string
	)
	err := scan(&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning admin row: %w", err)
	}
	admin.CreatedAt = parseTime(createdAt)
	admin.UpdatedAt = parseTime(updatedAt)
	return &admin, nil
}
