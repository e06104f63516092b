package repository

import (
	"gorm.io/gorm"
)

// QueryOption настраивает выборку: фильтр, жадная загрузка, сортировка, отслеживание
type QueryOption func(*query)

type include struct {
	path  string
	conds []any
}

type query struct {
	includes []include
	filters  []func(*gorm.DB) *gorm.DB
	orders   []any
	tracking bool
}

func buildQuery(opts []QueryOption) query {
	var q query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// Where добавляет условие выборки, аргументы как у gorm.DB.Where
func Where(cond any, args ...any) QueryOption {
	return func(q *query) {
		q.filters = append(q.filters, func(db *gorm.DB) *gorm.DB {
			return db.Where(cond, args...)
		})
	}
}

// Filter добавляет произвольный scope в качестве условия
func Filter(scope func(*gorm.DB) *gorm.DB) QueryOption {
	return func(q *query) {
		q.filters = append(q.filters, scope)
	}
}

// Include жадно загружает связь по пути вида "Employees.Address"
func Include(path string, conds ...any) QueryOption {
	return func(q *query) {
		q.includes = append(q.includes, include{path: path, conds: conds})
	}
}

// OrderBy добавляет сортировку
func OrderBy(expr any) QueryOption {
	return func(q *query) {
		q.orders = append(q.orders, expr)
	}
}

// AsTracking регистрирует результаты в единице работы, чтобы их можно было изменять
func AsTracking() QueryOption {
	return func(q *query) {
		q.tracking = true
	}
}

// apply собирает запрос в порядке: жадная загрузка, фильтры, сортировка
func (q query) apply(db *gorm.DB) *gorm.DB {
	for _, inc := range q.includes {
		db = db.Preload(inc.path, inc.conds...)
	}
	db = q.applyFilters(db)
	for _, order := range q.orders {
		db = db.Order(order)
	}
	return db
}

func (q query) applyFilters(db *gorm.DB) *gorm.DB {
	if len(q.filters) == 0 {
		return db
	}
	return db.Scopes(q.filters...)
}

// ordered возвращает условие жадной загрузки с сортировкой
func ordered(expr string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(expr)
	}
}

// with дописывает к стандартному графу дополнительные опции вызывающего
func with(graph []QueryOption, opts ...QueryOption) []QueryOption {
	out := make([]QueryOption, 0, len(graph)+len(opts))
	out = append(out, graph...)
	return append(out, opts...)
}
