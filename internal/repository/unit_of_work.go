package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/company-directory-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityState - состояние сущности в единице работы
type EntityState int

const (
	Added EntityState = iota + 1
	Modified
	Deleted
)

func (s EntityState) String() string {
	switch s {
	case Added:
		return "insert"
	case Modified:
		return "update"
	case Deleted:
		return "delete"
	default:
		return "unknown"
	}
}

// Entry - изменение, ожидающее сохранения
type Entry struct {
	Entity domain.Entity
	State  EntityState
}

// SaveHook вызывается перед фиксацией изменений со всеми ожидающими записями
type SaveHook func(ctx context.Context, entries []Entry) error

type entityKey struct {
	table string
	id    int64
}

// UnitOfWork копит изменения нескольких репозиториев и фиксирует их одной транзакцией.
// Создаётся на один запрос и не предназначен для конкурентного использования.
type UnitOfWork struct {
	db      *gorm.DB
	logger  *slog.Logger
	now     func() time.Time
	hooks   []SaveHook
	pending []Entry
	tracked map[entityKey]domain.Entity
}

// Option настраивает единицу работы
type Option func(*UnitOfWork)

// WithLogger задаёт логгер для ошибок сохранения
func WithLogger(logger *slog.Logger) Option {
	return func(u *UnitOfWork) {
		u.logger = logger
	}
}

// WithClock подменяет часы, по которым проставляются метки аудита
func WithClock(now func() time.Time) Option {
	return func(u *UnitOfWork) {
		u.now = now
	}
}

// WithHooks добавляет хуки после стандартного хука аудита
func WithHooks(hooks ...SaveHook) Option {
	return func(u *UnitOfWork) {
		u.hooks = append(u.hooks, hooks...)
	}
}

// NewUnitOfWork создаёт единицу работы поверх подключения
func NewUnitOfWork(db *gorm.DB, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		db:      db,
		logger:  slog.Default(),
		now:     time.Now,
		tracked: make(map[entityKey]domain.Entity),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.hooks = append([]SaveHook{AuditTimestamps(u.now)}, u.hooks...)
	return u
}

// HasChanges сообщает, есть ли несохранённые изменения
func (u *UnitOfWork) HasChanges() bool {
	return len(u.pending) > 0
}

func (u *UnitOfWork) stage(state EntityState, entity domain.Entity) {
	for i, e := range u.pending {
		if e.Entity != entity {
			continue
		}
		switch {
		case state == Modified:
			return
		case state == Deleted && e.State == Added:
			u.pending = append(u.pending[:i], u.pending[i+1:]...)
			return
		case state == Deleted:
			u.pending[i].State = Deleted
			return
		}
	}
	u.pending = append(u.pending, Entry{Entity: entity, State: state})
}

func (u *UnitOfWork) lookup(table string, id int64) (domain.Entity, bool) {
	e, ok := u.tracked[entityKey{table: table, id: id}]
	return e, ok
}

// attach регистрирует сущность в карте идентичности. Если сущность с тем же ключом
// уже отслеживается, возвращается она.
func (u *UnitOfWork) attach(entity domain.Entity) domain.Entity {
	key := entityKey{table: entity.TableName(), id: entity.PrimaryKey()}
	if key.id == 0 {
		return entity
	}
	if existing, ok := u.tracked[key]; ok {
		return existing
	}
	u.tracked[key] = entity
	return entity
}

// Save фиксирует все ожидающие изменения
func (u *UnitOfWork) Save(ctx context.Context) error {
	_, err := u.commit(ctx)
	return err
}

func (u *UnitOfWork) commit(ctx context.Context) (int64, error) {
	if len(u.pending) == 0 {
		return 0, nil
	}

	for _, hook := range u.hooks {
		if err := hook(ctx, u.pending); err != nil {
			return 0, err
		}
	}

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range u.pending {
			result := write(tx, e)
			if result.Error != nil {
				return &domain.PersistenceError{Entity: e.Entity.TableName(), Op: e.State.String(), Err: result.Error}
			}
			affected += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		var perr *domain.PersistenceError
		if !errors.As(err, &perr) {
			perr = &domain.PersistenceError{Entity: "transaction", Op: "commit", Err: err}
		}
		u.logger.Error("failed to save changes",
			slog.String("entity", perr.Entity),
			slog.String("op", perr.Op),
			slog.Any("error", perr.Err),
		)
		return 0, perr
	}

	u.pending = nil
	clear(u.tracked)
	return affected, nil
}

func write(tx *gorm.DB, e Entry) *gorm.DB {
	switch e.State {
	case Added:
		return tx.Create(e.Entity)
	case Modified:
		return tx.Model(e.Entity).Select("*").Omit(clause.Associations).Updates(e.Entity)
	default:
		return tx.Delete(e.Entity)
	}
}
