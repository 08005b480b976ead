package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/spreadview/config"
)

// Page is one entry of the settings page list.
// Width and Height are optional; missing values are looked up remotely.
type Page struct {
	PID    string `yaml:"pid" json:"pid"`
	URI    string `yaml:"uri" json:"uri"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty" validate:"gte=0"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty" validate:"gte=0"`
}

// pageGeometry is the wire form of Page. Host pages may quote the numbers.
type pageGeometry struct {
	PID    string  `yaml:"pid" json:"pid"`
	URI    string  `yaml:"uri" json:"uri"`
	Width  jsonInt `yaml:"width" json:"width"`
	Height jsonInt `yaml:"height" json:"height"`
}

func (p *Page) set(g pageGeometry) {
	*p = Page{PID: g.PID, URI: g.URI, Width: int(g.Width), Height: int(g.Height)}
}

func (p *Page) UnmarshalJSON(data []byte) error {
	var g pageGeometry
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	p.set(g)
	return nil
}

func (p *Page) UnmarshalYAML(node *yaml.Node) error {
	var g pageGeometry
	if err := node.Decode(&g); err != nil {
		return err
	}
	p.set(g)
	return nil
}

// TOCEntry is a table of contents line pointing at a page label.
type TOCEntry struct {
	Title      string `yaml:"title" json:"title" validate:"required"`
	PageNumber string `yaml:"pageNumber" json:"pageNumber" validate:"required"`
}

// Settings is what the hosting page hands to the viewer for one book.
type Settings struct {
	PageCount       int        `yaml:"pageCount" json:"pageCount" validate:"gte=0"`
	Pages           []Page     `yaml:"pages" json:"pages" validate:"dive"`
	PageNumbers     []string   `yaml:"pageNumbers" json:"pageNumbers"`
	PageProgression string     `yaml:"pageProgression" json:"pageProgression" validate:"omitempty,oneof=lr rl LR RL"`
	Label           string     `yaml:"label" json:"label"`
	ImagesFolderURI string     `yaml:"imagesFolderUri" json:"imagesFolderUri"`
	DjatokaURI      string     `yaml:"djatokaUri" json:"djatokaUri" validate:"required"`
	Compression     string     `yaml:"compression" json:"compression"`
	DimensionsURI   string     `yaml:"dimensionsUri" json:"dimensionsUri" validate:"required,contains=PID"`
	TextURI         string     `yaml:"textUri" json:"textUri" validate:"required,contains=PID"`
	SearchURI       string     `yaml:"searchUri" json:"searchUri" validate:"omitempty,contains=TERM"`
	Info            string     `yaml:"info" json:"info"`
	Mode            int        `yaml:"mode" json:"mode" validate:"oneof=1 2 3"`
	TOC             []TOCEntry `yaml:"toc" json:"toc" validate:"dive"`
}

// ParseSettings decodes settings from JSON or YAML. Keys the host page adds
// for other consumers are ignored.
//
// JSON goes through encoding/json: host pages escape slashes ("http:\/\/")
// and YAML has no such escape.
func ParseSettings(data []byte) (*Settings, error) {
	s := &Settings{
		PageProgression: "lr",
		Compression:     "4",
		Mode:            2,
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, s); err != nil {
			return nil, fmt.Errorf("book settings: failed to decode JSON: %w", err)
		}
		if err := config.Validate(s); err != nil {
			return nil, fmt.Errorf("book settings: %w", err)
		}
	} else if err := config.Unmarshal(data, s, false); err != nil {
		return nil, fmt.Errorf("book settings: %w", err)
	}
	if s.PageCount > len(s.Pages) {
		return nil, fmt.Errorf("book settings: page count %d exceeds %d listed pages", s.PageCount, len(s.Pages))
	}
	return s, nil
}

// LoadSettings reads book settings from a file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading book settings: %w", err)
	}
	return ParseSettings(data)
}
