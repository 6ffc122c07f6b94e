package querybuilder

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a clamped page/limit pair.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

// NewPage floors page and limit to 1 and caps limit at MaxLimit.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// ParsePage reads raw query values, falling back to the defaults when absent or not numeric.
func ParsePage(rawPage, rawLimit string) Page {
	page, err := strconv.Atoi(rawPage)
	if err != nil {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		limit = DefaultLimit
	}
	return NewPage(page, limit)
}

// TotalPages is ceil(total/limit).
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// SQL returns the LIMIT/OFFSET suffix and its bind arguments.
func (p Page) SQL() (string, []interface{}) {
	return " LIMIT ? OFFSET ?", []interface{}{p.Limit, p.Offset}
}
