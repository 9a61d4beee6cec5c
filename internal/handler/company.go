package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/repository"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/storage"
)

// CompanyHandler is the admin CRUD for partner companies shown on the
// portal landing page.
type CompanyHandler struct {
	Companies *repository.CompanyRepo
	Store     *storage.LocalStore
}

func NewCompanyHandler(r *repository.CompanyRepo, st *storage.LocalStore) *CompanyHandler {
	if r == nil || st == nil {
		panic("nil dependency passed to NewCompanyHandler")
	}
	return &CompanyHandler{Companies: r, Store: st}
}

type companyReq struct {
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	ContactEmail string  `json:"contact_email"`
	WebsiteURL   *string `json:"website_url"`
}

func (req *companyReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Sector = strings.TrimSpace(req.Sector)
	req.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	if req.Name == "" || req.Sector == "" {
		return "name and sector required"
	}
	if req.ContactEmail == "" || !strings.Contains(req.ContactEmail, "@") {
		return "valid contact_email required"
	}
	return ""
}

func (h *CompanyHandler) Create(c echo.Context) error {
	var req companyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	pc := model.PartnerCompany{
		Name:         req.Name,
		Sector:       req.Sector,
		ContactEmail: req.ContactEmail,
		WebsiteURL:   req.WebsiteURL,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Companies.Create(ctx, &pc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toCompanyView(pc, h.Store))
}

func (h *CompanyHandler) Update(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req companyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prev, err := h.Companies.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	pc := model.PartnerCompany{
		ID:           id,
		Name:         req.Name,
		Sector:       req.Sector,
		ContactEmail: req.ContactEmail,
		WebsiteURL:   req.WebsiteURL,
		LogoPath:     prev.LogoPath,
	}
	if err := h.Companies.Update(ctx, &pc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toCompanyView(pc, h.Store))
}

// UploadLogo stores the company logo.
func (h *CompanyHandler) UploadLogo(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fh, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "logo file required"})
	}
	if fh.Size > 5<<20 {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "logo exceeds 5 MiB"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	pc, err := h.Companies.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	objPath, err := h.Store.Save("companies", fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	old := pc.LogoPath
	pc.LogoPath = &objPath
	if err := h.Companies.Update(ctx, pc); err != nil {
		_ = h.Store.Delete(objPath)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if old != nil {
		_ = h.Store.Delete(*old)
	}
	return c.JSON(http.StatusOK, echo.Map{"logo_url": h.Store.PublicURL(objPath)})
}

func (h *CompanyHandler) Delete(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Companies.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
