package repository

import (
	"context"
	"fmt"

	"github.com/company-directory-api/internal/domain"
)

// Record - сущность, которой можно управлять через Repository.
// T - указатель на структуру сущности.
type Record[T any] interface {
	domain.Entity
	Assign(src T)
}

// Repository - обобщённый доступ к данным одного типа сущностей.
// Изменения копятся в единице работы и фиксируются вызовом Save.
type Repository[T Record[T]] struct {
	uow *UnitOfWork
}

// NewRepository создаёт репозиторий, привязанный к единице работы
func NewRepository[T Record[T]](uow *UnitOfWork) *Repository[T] {
	return &Repository[T]{uow: uow}
}

// Add ставит сущность на вставку. Ключ заполняется после Save.
func (r *Repository[T]) Add(entity T) T {
	r.uow.stage(Added, entity)
	return entity
}

// AddMany ставит сущности на вставку, сохраняет единицу работы и возвращает число затронутых строк
func (r *Repository[T]) AddMany(ctx context.Context, entities []T) (int64, error) {
	for _, e := range entities {
		r.uow.stage(Added, e)
	}
	return r.uow.commit(ctx)
}

// Count возвращает число записей, подходящих под фильтры. Include и OrderBy игнорируются.
func (r *Repository[T]) Count(ctx context.Context, opts ...QueryOption) (int64, error) {
	var (
		model T
		count int64
	)
	q := buildQuery(opts)
	err := q.applyFilters(r.uow.db.WithContext(ctx).Model(model)).Count(&count).Error
	return count, err
}

// Exists сообщает, есть ли хотя бы одна подходящая запись
func (r *Repository[T]) Exists(ctx context.Context, opts ...QueryOption) (bool, error) {
	count, err := r.Count(ctx, opts...)
	return count > 0, err
}

// GetAll возвращает все подходящие записи, пустой срез если ничего не найдено
func (r *Repository[T]) GetAll(ctx context.Context, opts ...QueryOption) ([]T, error) {
	q := buildQuery(opts)

	items := make([]T, 0)
	if err := q.apply(r.uow.db.WithContext(ctx)).Find(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}

	if q.tracking {
		for i := range items {
			items[i] = r.uow.attach(items[i]).(T)
		}
	}
	return items, nil
}

// GetSingle возвращает единственную подходящую запись или nil.
// Если подходит больше одной записи, возвращает domain.ErrAmbiguousResult.
func (r *Repository[T]) GetSingle(ctx context.Context, opts ...QueryOption) (T, error) {
	var zero T
	q := buildQuery(opts)

	var items []T
	if err := q.apply(r.uow.db.WithContext(ctx)).Limit(2).Find(&items).Error; err != nil {
		return zero, err
	}

	switch len(items) {
	case 0:
		return zero, nil
	case 1:
		if q.tracking {
			return r.uow.attach(items[0]).(T), nil
		}
		return items[0], nil
	default:
		return zero, domain.ErrAmbiguousResult
	}
}

// Update находит существующую запись по ключу сущности и копирует в неё скалярные поля.
// Связи не заменяются. Изменение фиксируется при Save.
func (r *Repository[T]) Update(ctx context.Context, entity T) error {
	existing, err := r.locate(ctx, entity)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	existing.Assign(entity)
	r.uow.stage(Modified, existing)
	return nil
}

// Remove ставит на удаление отслеживаемую сущность, при необходимости загружая её
func (r *Repository[T]) Remove(ctx context.Context, entity T) error {
	existing, err := r.locate(ctx, entity)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	r.uow.stage(Deleted, existing)
	return nil
}

// RemoveRange ставит на удаление несколько сущностей. Если хотя бы одна не найдена,
// ни одна не ставится на удаление.
func (r *Repository[T]) RemoveRange(ctx context.Context, entities []T) error {
	located := make([]T, 0, len(entities))
	for _, e := range entities {
		existing, err := r.locate(ctx, e)
		if err != nil {
			return fmt.Errorf("remove range: %w", err)
		}
		located = append(located, existing)
	}

	for _, e := range located {
		r.uow.stage(Deleted, e)
	}
	return nil
}

// RemoveDetached ставит сущности на удаление только по ключу, без предварительной загрузки
func (r *Repository[T]) RemoveDetached(entities ...T) {
	for _, e := range entities {
		r.uow.stage(Deleted, e)
	}
}

// Save фиксирует единицу работы, к которой привязан репозиторий
func (r *Repository[T]) Save(ctx context.Context) error {
	return r.uow.Save(ctx)
}

// locate возвращает отслеживаемый экземпляр сущности с тем же ключом
func (r *Repository[T]) locate(ctx context.Context, entity T) (T, error) {
	var zero T
	table, key := entity.TableName(), entity.PrimaryKey()
	if key == 0 {
		return zero, fmt.Errorf("%s: %w", table, domain.ErrEntityKeyMissing)
	}

	if tracked, ok := r.uow.lookup(table, key); ok {
		return tracked.(T), nil
	}

	var items []T
	if err := r.uow.db.WithContext(ctx).Limit(1).Find(&items, key).Error; err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, fmt.Errorf("%s %d: %w", table, key, domain.ErrEntityDoesNotExist)
	}
	return r.uow.attach(items[0]).(T), nil
}

// Project выбирает записи и отображает каждую через selector
func Project[T Record[T], R any](ctx context.Context, r *Repository[T], selector func(T) R, opts ...QueryOption) ([]R, error) {
	items, err := r.GetAll(ctx, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = selector(item)
	}
	return out, nil
}
