package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/payment"
	"github.com/brightwood-pta/portal/internal/receipt"
	"github.com/brightwood-pta/portal/internal/repository"
)

// DonationHandler runs the donation flow: open a checkout session, confirm
// the provider callback, hand out PDF receipts.
type DonationHandler struct {
	Donations *repository.DonationRepo
	Provider  payment.Provider
}

func NewDonationHandler(d *repository.DonationRepo, p payment.Provider) *DonationHandler {
	return &DonationHandler{Donations: d, Provider: p}
}

type checkoutReq struct {
	AmountCents uint32 `json:"amount_cents" validate:"required,min=100"`
	DonorName   string `json:"donor_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

type confirmReq struct {
	Reference string `json:"reference" validate:"required"`
}

func donationError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrDonationNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// Checkout handles POST /v1/donations/checkout.  Public.  Creates the
// provider session first, then records the pending donation keyed on the
// session reference.
func (h *DonationHandler) Checkout(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents (min 100), donor_name and email are required"})
	}

	ctx := c.Request().Context()
	session, err := h.Provider.CreateSession(ctx, req.AmountCents, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout provider error"})
	}

	donation := &model.Donation{
		DonorName:   req.DonorName,
		Email:       req.Email,
		AmountCents: req.AmountCents,
		Status:      model.DonationStatusPending,
		Reference:   session.Reference,
	}
	if err := h.Donations.Create(ctx, donation); err != nil {
		return donationError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"donation_id": donation.ID,
		"reference":   session.Reference,
		"url":         session.URL,
	})
}

// Confirm handles POST /v1/donations/confirm.  Idempotent on repeated
// callbacks for the same reference.
func (h *DonationHandler) Confirm(c echo.Context) error {
	var req confirmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reference is required"})
	}
	donation, err := h.Donations.MarkPaid(c.Request().Context(), req.Reference)
	if err != nil {
		return donationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"donation": donation})
}

// List handles GET /v1/donations.  Admin panel only.
func (h *DonationHandler) List(c echo.Context) error {
	donations, err := h.Donations.List(c.Request().Context())
	if err != nil {
		return donationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"donations": donations})
}

// Receipt handles GET /v1/donations/:id/receipt, rendering a PDF receipt for
// a paid donation.  400 for donations still pending.
func (h *DonationHandler) Receipt(c echo.Context) error {
	id := paramID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	donation, err := h.Donations.GetByID(c.Request().Context(), id)
	if err != nil {
		return donationError(c, err)
	}
	if donation.Status != model.DonationStatusPaid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "donation is not paid"})
	}
	pdf, err := receipt.Render(donation)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "receipt rendering failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="receipt-`+strconv.FormatUint(donation.ID, 10)+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
