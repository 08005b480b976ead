// Package ui builds the HTML fragments the viewer shows in its modal
// dialogs and on its navigation line.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/spreadview/core"
	"github.com/gaurav-prasanna/spreadview/core/book"
)

// Mode is the viewer's display mode.
type Mode int

const (
	OnePage    Mode = 1
	TwoPage    Mode = 2
	Thumbnails Mode = 3
)

const (
	msgFullTextUnsupported = "Full text not supported for this view."
	msgEmbedUnsupported    = "Embed code not currently supported."
)

const fullTextTmpl = `<div class="BRfloat" id="BRfulltext">
<div class="BRfloatHead">Text View<a class="floatShut" href="javascript:;"><span class="shift">Close</span></a></div>
<div class="BRfloatMeta"></div>
</div>`

const twoPageTmpl = `<div class="textTop">
<div class="textLeft"></div>
<div class="textRight"></div>
</div>`

const infoTmpl = `<div class="BRfloat" id="BRinfo">
<div class="BRfloatHead">About this book<a class="floatShut" href="javascript:;"><span class="shift">Close</span></a></div>
</div>`

const shareTmpl = `<div class="BRfloat" id="BRshare">
<div class="BRfloatHead">Share<a class="floatShut" href="javascript:;"><span class="shift">Close</span></a></div>
<p>Copy and paste one of these options to share this book elsewhere.</p>
<form method="post" action="">
<fieldset><label for="pageview">Link to this page view:</label><input type="text" name="pageview" id="pageview"/></fieldset>
<fieldset><label for="booklink">Link to the book:</label><input type="text" name="booklink" id="booklink"/></fieldset>
<fieldset class="center"><button type="button">Finished</button></fieldset>
</form>
</div>`

// Dialogs builds dialog content for one book.
type Dialogs struct {
	book      *book.Book
	texts     core.TextSource
	extractor core.Extractor
	log       *zap.Logger
}

// NewDialogs creates a dialog builder. Full text is fetched through texts
// and cleaned by extractor before it is inserted.
func NewDialogs(b *book.Book, texts core.TextSource, extractor core.Extractor, log *zap.Logger) *Dialogs {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dialogs{book: b, texts: texts, extractor: extractor, log: log}
}

func fragment(tmpl string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tmpl))
	if err != nil {
		return nil, fmt.Errorf("parsing dialog template: %w", err)
	}
	return doc, nil
}

func render(doc *goquery.Document) (string, error) {
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing dialog: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// pageText returns the cleaned full text of index, or "" when the index is
// outside the book or the page has no object id.
func (d *Dialogs) pageText(ctx context.Context, index int) (string, error) {
	pid, ok := d.book.PID(index)
	if !ok {
		return "", nil
	}
	raw, err := d.texts.Text(ctx, pid)
	if err != nil {
		return "", err
	}
	return d.extractor.Extract(raw)
}

// FullText returns the "Full Text" dialog for the page at index in mode.
// In two-page mode both halves of the spread are fetched concurrently.
func (d *Dialogs) FullText(ctx context.Context, mode Mode, index int) (string, error) {
	doc, err := fragment(fullTextTmpl)
	if err != nil {
		return "", err
	}
	meta := doc.Find(".BRfloatMeta")

	switch mode {
	case OnePage:
		text, err := d.pageText(ctx, index)
		if err != nil {
			return "", err
		}
		meta.SetHtml(text)
	case Thumbnails:
		meta.SetHtml("<div>" + msgFullTextUnsupported + "</div>")
	default:
		sp, err := d.book.SpreadPages(index)
		if err != nil {
			return "", err
		}
		var left, right string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			left, err = d.pageText(gctx, sp.Left)
			return err
		})
		g.Go(func() (err error) {
			right, err = d.pageText(gctx, sp.Right)
			return err
		})
		if err := g.Wait(); err != nil {
			return "", err
		}
		meta.SetHtml(twoPageTmpl)
		meta.Find(".textLeft").SetHtml(left)
		meta.Find(".textRight").SetHtml(right)
		d.log.Debug("Built two page full text",
			zap.Int("left", sp.Left), zap.Int("right", sp.Right))
	}
	return render(doc)
}

// Info returns the "About this book" dialog with the host supplied
// metadata HTML appended.
func (d *Dialogs) Info() (string, error) {
	doc, err := fragment(infoTmpl)
	if err != nil {
		return "", err
	}
	info, err := d.extractor.Extract(d.book.Settings().Info)
	if err != nil {
		return "", err
	}
	doc.Find("#BRinfo").AppendHtml(info)
	return render(doc)
}

// Share returns the "Share" dialog for a viewer at pageURL. The book link
// is pageURL without its fragment.
func (d *Dialogs) Share(pageURL string) (string, error) {
	doc, err := fragment(shareTmpl)
	if err != nil {
		return "", err
	}
	bookURL, _, _ := strings.Cut(pageURL, "#")
	doc.Find("#pageview").SetAttr("value", pageURL)
	doc.Find("#booklink").SetAttr("value", bookURL)
	return render(doc)
}

// EmbedCode is the text offered for embedding the viewer elsewhere.
func EmbedCode() string {
	return msgEmbedUnsupported
}
