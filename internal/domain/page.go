package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultPageFrom = 0
	DefaultPageSize = 10
)

// ErrInvalidPagination возвращается при from < 0 или size <= 0
var ErrInvalidPagination = errors.New("domain: invalid pagination")

// Page постраничная выборка с параметрами в виде смещения.
//
// Смещение переводится в номер страницы: index = from / size (0 при from == 0),
// поэтому from, не кратный size, округляется вниз до границы страницы:
// from=15, size=10 вернёт строки 10..19, а не 15..24.
type Page struct {
	From int
	Size int
}

// NewPage проверяет параметры пагинации
func NewPage(from, size int) (Page, error) {
	if from < 0 || size <= 0 {
		return Page{}, fmt.Errorf("%w: from=%d, size=%d", ErrInvalidPagination, from, size)
	}
	return Page{From: from, Size: size}, nil
}

// Index номер страницы
func (p Page) Index() int {
	if p.From > 0 {
		return p.From / p.Size
	}
	return 0
}

// Offset число пропускаемых строк
func (p Page) Offset() int {
	return p.Index() * p.Size
}

// Limit размер страницы
func (p Page) Limit() int {
	return p.Size
}
