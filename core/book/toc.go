package book

import (
	"go.uber.org/zap"
)

// Chapter is a table of contents entry placed on the navigation line.
type Chapter struct {
	Title      string `json:"title"`
	PageNumber string `json:"page_number"`
	PageIndex  int    `json:"page_index"`
	Percent    string `json:"percent"`
}

// Chapters resolves the settings' table of contents against page labels.
// Entries come back last to first, the order the navigation line stacks
// them in. Entries naming an unknown page are skipped.
func (b *Book) Chapters() []Chapter {
	toc := b.settings.TOC
	chapters := make([]Chapter, 0, len(toc))
	for i := len(toc) - 1; i >= 0; i-- {
		e := toc[i]
		index, err := b.PageIndex(e.PageNumber)
		if err != nil {
			b.log.Warn("Skipping table of contents entry",
				zap.String("title", e.Title), zap.Error(err))
			continue
		}
		chapters = append(chapters, Chapter{
			Title:      e.Title,
			PageNumber: e.PageNumber,
			PageIndex:  index,
			Percent:    b.PercentThrough(index),
		})
	}
	return chapters
}
