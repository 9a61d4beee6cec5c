package model

import "time"

// PartnerCompany is a company partnered with the portal, shown on the
// public site and managed by admins.
type PartnerCompany struct {
    ID           uint64    // partner_companies.id
    Name         string    // partner_companies.name
    Sector       string    // partner_companies.sector
    ContactEmail string    // partner_companies.contact_email
    WebsiteURL   *string   // partner_companies.website_url (nullable)
    LogoPath     *string   // partner_companies.logo_path (nullable)
    CreatedAt    time.Time // partner_companies.created_at
}
