package handlers

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"svgbanner/internal/domain"
)

// Renderer produces a banner for a decoded request.
type Renderer interface {
	Render(ctx context.Context, req domain.BannerRequest) (*domain.RenderedBanner, error)
}

// IconLister enumerates the available icon names.
type IconLister interface {
	List(ctx context.Context) ([]string, error)
}

// BannerService bundles the dependencies of the banner endpoints.
type BannerService struct {
	renderer Renderer
	icons    IconLister
}

// NewBannerService creates a new BannerService instance.
func NewBannerService(r Renderer, icons IconLister) *BannerService {
	return &BannerService{renderer: r, icons: icons}
}

// HandleBanner serves GET /banner/:title/:text?fg=&bg=&symbol=.
func (svc *BannerService) HandleBanner(c *fiber.Ctx) error {
	req, err := bannerRequestFromCtx(c)
	if err != nil {
		return err
	}

	out, err := svc.renderer.Render(c.UserContext(), req)
	if err != nil {
		return toHTTPError(err)
	}

	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.Send(out.Body)
}

// HandleListIcons serves GET /list_icons.
func (svc *BannerService) HandleListIcons(c *fiber.Ctx) error {
	names, err := svc.icons.List(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"icons": names})
}

// bannerRequestFromCtx decodes path segments and query parameters. Query
// parameters that are present stay set even when empty, so they get validated
// instead of silently replaced by defaults.
func bannerRequestFromCtx(c *fiber.Ctx) (domain.BannerRequest, error) {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return domain.BannerRequest{}, fiber.NewError(fiber.StatusBadRequest, "Invalid title: bad escape sequence")
	}
	text, err := url.PathUnescape(c.Params("text"))
	if err != nil {
		return domain.BannerRequest{}, fiber.NewError(fiber.StatusBadRequest, "Invalid text: bad escape sequence")
	}

	q := c.Queries()
	return domain.BannerRequest{
		Title:      title,
		Text:       text,
		Foreground: optional(q, "fg"),
		Background: optional(q, "bg"),
		Icon:       optional(q, "symbol"),
	}, nil
}

func optional(q map[string]string, key string) *string {
	v, ok := q[key]
	if !ok {
		return nil
	}
	v = string([]byte(v)) // detach from the request buffer
	return &v
}

// toHTTPError maps domain errors to status codes. The message keeps the cause
// for the server's error log; clients only see the status.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMalformedColor):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrIconNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
