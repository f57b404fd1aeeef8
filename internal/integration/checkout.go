package integration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"go.uber.org/zap"

	"inner-garden/internal/domain"
)

var (
	// ErrCheckoutNotConfigured means no Stripe key is set for this deployment.
	ErrCheckoutNotConfigured = errors.New("checkout is not configured")
	// ErrArtworkNotPurchasable means the artwork has no price or is not for sale.
	ErrArtworkNotPurchasable = errors.New("artwork is not available for purchase")
)

// CheckoutConfig holds Stripe checkout settings.
type CheckoutConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// CheckoutClient creates Stripe checkout sessions for single artworks.
type CheckoutClient struct {
	cfg    CheckoutConfig
	logger *zap.Logger
}

// NewCheckoutClient creates a new CheckoutClient and installs the API key.
func NewCheckoutClient(cfg CheckoutConfig, logger *zap.Logger) *CheckoutClient {
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &CheckoutClient{cfg: cfg, logger: logger}
}

// Enabled reports whether Stripe checkout is configured.
func (c *CheckoutClient) Enabled() bool {
	return c.cfg.SecretKey != ""
}

// amountInCents converts a decimal price to the smallest currency unit.
// Rounding, not truncation: the float product of e.g. 0.29*100 lands just
// below 29 and would otherwise lose a cent.
func amountInCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateSession builds a one-time payment session for the artwork and returns
// the hosted checkout URL.
func (c *CheckoutClient) CreateSession(art *domain.Artwork) (string, error) {
	if !c.Enabled() {
		return "", ErrCheckoutNotConfigured
	}
	if art.Price == nil || *art.Price <= 0 || art.Status != domain.StatusAvailable {
		return "", ErrArtworkNotPurchasable
	}

	name := art.TitleEN
	if name == "" {
		name = art.TitleUK
	}
	if name == "" {
		name = "Artwork"
	}

	currency := strings.ToLower(art.Currency)
	if currency == "" {
		currency = "eur"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.cfg.SuccessURL),
		CancelURL:  stripe.String(c.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amountInCents(*art.Price)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
						Metadata: map[string]string{
							"artwork_id": art.ID,
						},
					},
				},
			},
		},
		ClientReferenceID: stripe.String(art.ID),
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		c.logger.Error("Stripe checkout session creation failed",
			zap.Error(err),
			zap.String("artwork_id", art.ID),
		)
		return "", fmt.Errorf("%w: checkout session creation failed", ErrUpstream)
	}

	return session.URL, nil
}
