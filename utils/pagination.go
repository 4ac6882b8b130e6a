package utils

import (
	"errors"
	"strconv"
)

// PageSize is the number of posts on every paginated listing.
const PageSize = 10

var ErrPageOutOfRange = errors.New("page out of range")

type Page struct {
	Number   int   `json:"number"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
	Size     int   `json:"size"`
}

// NewPage validates number against total items. An empty result set still has page 1.
func NewPage(number int, total int64, size int) (*Page, error) {
	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages == 0 {
		numPages = 1
	}
	if number < 1 || number > numPages {
		return nil, ErrPageOutOfRange
	}
	return &Page{Number: number, NumPages: numPages, Total: total, Size: size}, nil
}

// ParsePage reads the ?page= value; "" means the first page and "last" the final one.
func ParsePage(raw string, total int64, size int) (*Page, error) {
	switch raw {
	case "":
		return NewPage(1, total, size)
	case "last":
		last, _ := NewPage(1, total, size)
		return NewPage(last.NumPages, total, size)
	}
	number, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ErrPageOutOfRange
	}
	return NewPage(number, total, size)
}

func (p *Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p *Page) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page) PreviousNumber() int {
	return p.Number - 1
}

func (p *Page) NextNumber() int {
	return p.Number + 1
}
