// Package chrome builds the parts shared by every page: brand header, navigation
// with the active link marked, the mobile nav toggle and the footer.
package chrome

import (
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/openarc/ehive-shop/internal/models"
)

// NavParam is the query parameter carrying the mobile nav state
const NavParam = "nav"

const defaultSegment = "index"

// Link is one navigation entry
type Link struct {
	Label   string
	Href    string
	Current bool
}

// AriaCurrent returns the aria-current attribute value, empty for inactive links
func (l Link) AriaCurrent() string {
	if l.Current {
		return "page"
	}
	return ""
}

// DefaultLinks returns the shop navigation. Every product gets its own entry.
func DefaultLinks(products []models.Product) []Link {
	links := []Link{
		{Label: "Start", Href: "/"},
		{Label: "Shop", Href: "/shop"},
	}
	for _, p := range products {
		links = append(links, Link{Label: p.Name, Href: "/products/" + url.PathEscape(p.ID)})
	}
	return append(links, Link{Label: "Warenkorb", Href: "/cart"})
}

// MarkActive returns a copy of links where every link whose trailing path segment
// equals the request's is marked current. Comparison ignores case; an empty
// segment counts as "index".
func MarkActive(links []Link, requestPath string) []Link {
	current := trailingSegment(requestPath)
	out := make([]Link, len(links))
	for i, l := range links {
		l.Current = trailingSegment(hrefPath(l.Href)) == current
		out[i] = l
	}
	return out
}

func hrefPath(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return u.Path
}

func trailingSegment(p string) string {
	p = strings.TrimRight(p, "/")
	seg := strings.ToLower(path.Base("/" + p))
	if seg == "/" || seg == "." || seg == "" {
		return defaultSegment
	}
	return strings.TrimSuffix(seg, ".html")
}

// NavState is the open/closed state of the mobile navigation panel
type NavState struct {
	Open bool
}

// ParseNavState reads the state from the query string; only nav=open opens the panel
func ParseNavState(q url.Values) NavState {
	return NavState{Open: strings.EqualFold(q.Get(NavParam), "open")}
}

// Toggle flips the state
func (n NavState) Toggle() NavState {
	return NavState{Open: !n.Open}
}

// AriaExpanded mirrors the panel visibility for the toggle button
func (n NavState) AriaExpanded() string {
	if n.Open {
		return "true"
	}
	return "false"
}

// ToggleHref links to the same page with the panel state flipped, keeping the
// rest of the query (variant, quantity) intact.
func (n NavState) ToggleHref(p string, q url.Values) string {
	next := url.Values{}
	for k, v := range q {
		next[k] = append([]string(nil), v...)
	}
	if n.Toggle().Open {
		next.Set(NavParam, "open")
	} else {
		next.Del(NavParam)
	}
	if encoded := next.Encode(); encoded != "" {
		return p + "?" + encoded
	}
	return p
}

// Footer carries the footer's dynamic values
type Footer struct {
	Year         int
	ContactEmail string
}

// Page is the chrome every template receives
type Page struct {
	Title  string
	Brand  models.Brand
	Links  []Link
	Nav    NavState
	Toggle string
	Footer Footer
}

// Builder assembles Page values per request
type Builder struct {
	brand models.Brand
	links []Link
	now   func() time.Time
}

// NewBuilder creates a chrome builder. brand should already carry display
// defaults; now may be nil, in which case time.Now is used.
func NewBuilder(brand models.Brand, links []Link, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{
		brand: brand,
		links: links,
		now:   now,
	}
}

// Page builds the chrome for one request
func (b *Builder) Page(r *http.Request, title string) Page {
	q := r.URL.Query()
	nav := ParseNavState(q)
	return Page{
		Title:  title,
		Brand:  b.brand,
		Links:  MarkActive(b.links, r.URL.Path),
		Nav:    nav,
		Toggle: nav.ToggleHref(r.URL.Path, q),
		Footer: Footer{
			Year:         b.now().Year(),
			ContactEmail: b.brand.ContactEmail,
		},
	}
}
