package model

type Page[T any] struct {
	Items       []T
	Number      int
	NumPages    int
	Count       int64
	PageSize    int
	HasNext     bool
	HasPrevious bool
}

// Paginate clamps the requested page into [1, numPages]; an empty result set
// still has one (empty) page. It returns the clamped page number and the row
// offset to read from.
func Paginate(requested int, count int64, size int) (number, numPages, offset int) {
	if size <= 0 {
		size = ReportPageSize
	}
	numPages = int((count + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}
	number = requested
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	return number, numPages, (number - 1) * size
}

func NewPage[T any](items []T, number, numPages int, count int64, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    numPages,
		Count:       count,
		PageSize:    size,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}
