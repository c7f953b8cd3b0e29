package client

import (
	"fmt"
	"net/http"
)

// Style is the request dialect a variant speaks.
type Style string

const (
	StyleREST Style = "rest"
	StyleSOAP Style = "soap"
)

// Variant is one transport strategy tried against the list endpoint.
type Variant struct {
	Scheme    string // "http" or "https"
	Style     Style
	TLSVerify bool // false downgrades trust for endpoints with broken certificate chains
}

func (v Variant) String() string {
	s := fmt.Sprintf("%s-%s", v.Scheme, v.Style)
	if v.Scheme == "https" && !v.TLSVerify {
		s += "-insecure"
	}
	return s
}

// DefaultVariants is the fixed probe order. The endpoint is inconsistent about
// certificate validity and dialect depending on the deployment it is served from.
var DefaultVariants = []Variant{
	{Scheme: "https", Style: StyleREST, TLSVerify: true},
	{Scheme: "https", Style: StyleREST, TLSVerify: false},
	{Scheme: "http", Style: StyleREST, TLSVerify: true},
	{Scheme: "https", Style: StyleSOAP, TLSVerify: false},
}

// UserAgent is a desktop browser string; the endpoint filters unknown agents.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func (v Variant) setHeaders(h http.Header) {
	h.Set("User-Agent", UserAgent)
	switch v.Style {
	case StyleSOAP:
		h.Set("Content-Type", "text/xml; charset=utf-8")
		h.Set("SOAPAction", "")
	default:
		h.Set("Accept", "application/xml, text/xml, */*")
	}
}
