package app

import "catalog/pkg/flash"

// Page is a render outcome: a view template plus its bind data. TakeFlash
// marks the one page that consumes the pending flash notice; the transport
// adapter reads and clears the cookie when it renders such a page.
type Page struct {
	Template        string
	Title           string
	MetaDescription string
	TakeFlash       bool
	Data            map[string]interface{}
}

// Result is what every page handler produces: either a redirect, optionally
// carrying a flash notice for the next request, or a page to render.
type Result struct {
	Redirect string
	Flash    *flash.Notice
	Page     *Page
}

func RedirectWithFlash(location string, notice *flash.Notice) *Result {
	return &Result{Redirect: location, Flash: notice}
}
