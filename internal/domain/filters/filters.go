package filters

import "strings"

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

type Filters struct {
	Page         int    `schema:"page"`
	PageSize     int    `schema:"page_size"`
	Sort         string `schema:"sort"`
	SortSafelist []string
}

func New(defaultSort string, safelist ...string) Filters {
	return Filters{
		Page:         1,
		PageSize:     20,
		Sort:         defaultSort,
		SortSafelist: safelist,
	}
}

func (f *Filters) Valid() bool {
	if f.Page < 1 || f.PageSize < 1 || f.PageSize > 100 {
		return false
	}
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return true
		}
	}
	return false
}

// SortColumn must only be called after Valid; the safelist keeps the
// column name out of SQL-injection territory.
func (f *Filters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f *Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return DescSort
	}
	return AscSort
}

func (f *Filters) Limit() int {
	return f.PageSize
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}
