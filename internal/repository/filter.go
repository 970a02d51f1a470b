package repository

import (
	"strings"

	"taskFlow/internal/models/task"
)

// ListFilter - конъюнкция условий выборки: точные совпадения по статусу
// и приоритету плюс подстрочный поиск по title/description/category (OR)
type ListFilter struct {
	Status   *task.Status
	Priority *task.Priority
	Search   string
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByDueDate   SortField = "dueDate"
	SortByPriority  SortField = "priority"
	SortByTitle     SortField = "title"
)

type Sort struct {
	Field SortField
	Desc  bool
}

// DefaultSort - новые задачи первыми
func DefaultSort() Sort {
	return Sort{Field: SortByCreatedAt, Desc: true}
}

// ParseSort разбирает ключ сортировки формата "[-]field".
// Неизвестный или пустой ключ откатывается к сортировке по умолчанию.
func ParseSort(raw string) Sort {
	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")

	switch SortField(field) {
	case SortByCreatedAt, SortByDueDate, SortByPriority, SortByTitle:
		return Sort{Field: SortField(field), Desc: desc}
	default:
		return DefaultSort()
	}
}

// String возвращает ключ в wire-формате ("-createdAt" и т.п.)
func (s Sort) String() string {
	if s.Desc {
		return "-" + string(s.Field)
	}
	return string(s.Field)
}
