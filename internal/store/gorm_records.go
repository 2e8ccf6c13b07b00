package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gen"
	"gorm.io/gen/field"
	"gorm.io/gorm"
)

const mysqlErrDuplicateEntry = 1062

// GormRecords implements Records on a gen data access object, usually one
// taken from the generated query package.
type GormRecords[T any] struct {
	do gen.DO
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return &DuplicateKeyError{Message: mysqlErr.Message}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &DuplicateKeyError{Message: err.Error()}
	}
	return err
}

// columnValue lets a filter value of any type be compared through a generic
// gen field.
type columnValue struct {
	value any
}

func (v columnValue) Value() (driver.Value, error) {
	return driver.DefaultParameterConverter.ConvertValue(v.value)
}

func conditions(tableName string, filter Filter) []gen.Condition {
	conds := make([]gen.Condition, 0, len(filter))
	for column, value := range filter {
		conds = append(conds, field.NewField(tableName, column).Eq(columnValue{value}))
	}
	return conds
}

func (r *GormRecords[T]) query(ctx context.Context, filter Filter) *gen.DO {
	do := r.do.WithContext(ctx).(*gen.DO)
	if len(filter) == 0 {
		return do
	}
	return do.Where(conditions(r.do.TableName(), filter)...).(*gen.DO)
}

func (r *GormRecords[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	result, err := r.query(ctx, filter).Take()
	if err != nil {
		return nil, translateError(err)
	}
	return result.(*T), nil
}

func (r *GormRecords[T]) FindMany(ctx context.Context, filter Filter, opts FindOptions) ([]*T, error) {
	do := r.query(ctx, filter)
	tableName := r.do.TableName()
	for _, sort := range opts.Sort {
		col := field.NewField(tableName, sort.Column)
		var column field.Expr = col
		if sort.Desc {
			column = col.Desc()
		}
		do = do.Order(column).(*gen.DO)
	}
	if opts.Limit > 0 {
		do = do.Limit(opts.Limit).(*gen.DO)
	}
	if opts.Offset > 0 {
		do = do.Offset(opts.Offset).(*gen.DO)
	}
	result, err := do.Find()
	if err != nil {
		return nil, translateError(err)
	}
	return result.([]*T), nil
}

func (r *GormRecords[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	count, err := r.query(ctx, filter).Count()
	return count, translateError(err)
}

func (r *GormRecords[T]) Create(ctx context.Context, record *T) error {
	return translateError(r.query(ctx, nil).Create(record))
}

// Update applies patch to the records matching filter and returns the first
// of them as stored after the update. Filter is expected to identify a
// single record.
func (r *GormRecords[T]) Update(ctx context.Context, filter Filter, patch Patch) (*T, error) {
	if _, err := r.FindOne(ctx, filter); err != nil {
		return nil, err
	}
	if _, err := r.query(ctx, filter).Updates(map[string]interface{}(patch)); err != nil {
		return nil, translateError(err)
	}
	updated := make(Filter, len(filter))
	for column, value := range filter {
		if patched, ok := patch[column]; ok {
			value = patched
		}
		updated[column] = value
	}
	return r.FindOne(ctx, updated)
}

func NewGormRecords[T any](do gen.DO) *GormRecords[T] {
	return &GormRecords[T]{do: do}
}
