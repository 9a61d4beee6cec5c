package repository

import (
	"context"
	"database/sql"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// CompanyRepo persists partner companies.  Only admins mutate this table;
// reads are public.
type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{db: db} }

const companyCols = `id, name, sector, contact_email, website_url, logo_path, created_at`

func scanCompany(scan func(dest ...any) error) (model.PartnerCompany, error) {
	var c model.PartnerCompany
	var website, logo sql.NullString
	err := scan(&c.ID, &c.Name, &c.Sector, &c.ContactEmail, &website, &logo, &c.CreatedAt)
	if err != nil {
		return c, err
	}
	if website.Valid {
		w := website.String
		c.WebsiteURL = &w
	}
	if logo.Valid {
		l := logo.String
		c.LogoPath = &l
	}
	return c, nil
}

// Create inserts a partner company and populates its ID.
func (r *CompanyRepo) Create(ctx context.Context, c *model.PartnerCompany) error {
	const q = `INSERT INTO partner_companies (name, sector, contact_email, website_url, logo_path)
	           VALUES (?, ?, ?, ?, ?)`
	out, err := r.db.ExecContext(ctx, q, c.Name, c.Sector, c.ContactEmail, c.WebsiteURL, c.LogoPath)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT created_at FROM partner_companies WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt)
}

// GetByID returns one company or sql.ErrNoRows.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.PartnerCompany, error) {
	q := `SELECT ` + companyCols + ` FROM partner_companies WHERE id = ?`
	c, err := scanCompany(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all companies ordered by name.
func (r *CompanyRepo) List(ctx context.Context) ([]model.PartnerCompany, error) {
	q := `SELECT ` + companyCols + ` FROM partner_companies ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PartnerCompany, 0)
	for rows.Next() {
		c, err := scanCompany(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites a company's fields.
func (r *CompanyRepo) Update(ctx context.Context, c *model.PartnerCompany) error {
	const q = `UPDATE partner_companies
	           SET name = ?, sector = ?, contact_email = ?, website_url = ?, logo_path = ?
	           WHERE id = ?`
	out, err := r.db.ExecContext(ctx, q, c.Name, c.Sector, c.ContactEmail, c.WebsiteURL, c.LogoPath, c.ID)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no change" from "no row".
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM partner_companies WHERE id = ?`, c.ID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a company.
func (r *CompanyRepo) Delete(ctx context.Context, id uint64) error {
	out, err := r.db.ExecContext(ctx, `DELETE FROM partner_companies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
