package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect SQL диалект хранилища
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect возвращает диалект по имени драйвера
func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case Postgres, SQLite:
		return Dialect(driver), nil
	default:
		return "", fmt.Errorf("psqlbuilder: unsupported driver %q", driver)
	}
}

// Builder squirrel builder с плейсхолдерами нужного диалекта
type Builder struct {
	squirrel.StatementBuilderType
	dialect Dialect
}

// New создает builder: $1 для postgres, ? для sqlite
func New(dialect Dialect) Builder {
	format := squirrel.PlaceholderFormat(squirrel.Dollar)
	if dialect == SQLite {
		format = squirrel.Question
	}
	return Builder{
		StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(format),
		dialect:              dialect,
	}
}

// Dialect текущий диалект
func (b Builder) Dialect() Dialect {
	return b.dialect
}

// SupportsRowLocks поддерживает ли диалект SELECT ... FOR UPDATE
func (b Builder) SupportsRowLocks() bool {
	return b.dialect == Postgres
}

// ForUpdate добавляет FOR UPDATE, если диалект это поддерживает
func (b Builder) ForUpdate(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if !b.SupportsRowLocks() {
		return q
	}
	return q.Suffix("FOR UPDATE")
}
