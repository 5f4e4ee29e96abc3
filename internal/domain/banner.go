package domain

// ContentTypeSVG is the content type of every rendered banner.
const ContentTypeSVG = "image/svg+xml"

// BannerRequest holds the decoded input of one banner request.
// Nil optional fields mean the parameter was absent and a default applies.
type BannerRequest struct {
	Title      string
	Text       string
	Foreground *string
	Background *string
	Icon       *string
}

// RenderedBanner is a finished SVG document ready to be written to a client.
type RenderedBanner struct {
	Body        []byte
	ContentType string
}
