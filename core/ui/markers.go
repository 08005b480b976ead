package ui

import (
	"html"
	"strconv"

	"github.com/gaurav-prasanna/spreadview/core/book"
	"github.com/gaurav-prasanna/spreadview/core/layout"
	"github.com/gaurav-prasanna/spreadview/core/search"
)

const searchMarkerTmpl = `<div class="search" title="Search result"><div class="query"><span></span></div></div>`

const chapterMarkerTmpl = `<div class="chapter"><div class="title"><span>|</span> </div></div>`

// SearchMarker renders a search hit for the navigation line.
func SearchMarker(m search.Marker) (string, error) {
	doc, err := fragment(searchMarkerTmpl)
	if err != nil {
		return "", err
	}
	marker := doc.Find(".search")
	marker.SetAttr("style", "left:"+m.Percent+";")
	marker.SetAttr("data-page-index", strconv.Itoa(m.PageIndex))
	query := marker.Find(".query")
	query.Find("span").SetText(m.PageNumber)
	query.PrependHtml(m.Query)
	return render(doc)
}

// ChapterMarker renders a table of contents entry for the navigation line.
func ChapterMarker(c book.Chapter) (string, error) {
	doc, err := fragment(chapterMarkerTmpl)
	if err != nil {
		return "", err
	}
	marker := doc.Find(".chapter")
	marker.SetAttr("style", "left:"+c.Percent+";")
	marker.SetAttr("data-page-index", strconv.Itoa(c.PageIndex))
	title := marker.Find(".title")
	title.PrependHtml(html.EscapeString(c.Title))
	title.AppendHtml(html.EscapeString(c.PageNumber))
	return render(doc)
}

// NavigationTitles returns the tooltip of each directional navigation
// control. Right-to-left books swap the meaning of left and right.
func NavigationTitles(dir layout.Direction) map[string]string {
	titles := map[string]string{
		".book_top":    "First page",
		".book_bottom": "Last page",
		".book_up":     "Page up",
		".book_down":   "Page down",
	}
	if dir == layout.RTL {
		titles[".book_leftmost"] = "Last page"
		titles[".book_rightmost"] = "First page"
		titles[".book_left"] = "Next Page"
		titles[".book_right"] = "Previous Page"
	} else {
		titles[".book_leftmost"] = "First page"
		titles[".book_rightmost"] = "Last page"
		titles[".book_left"] = "Previous Page"
		titles[".book_right"] = "Next Page"
	}
	return titles
}
