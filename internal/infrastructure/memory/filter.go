package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

// row vista columna→valor de una entidad, con los mismos nombres que las tablas Postgres.
type row map[string]interface{}

// applyFilter filtra, ordena y pagina. Columnas desconocidas producen error, igual que en Postgres.
// Las columnas válidas salen de la vista de un valor cero, así que no dependen de los datos.
func applyFilter[E any](items []*E, f *repository.ListFilter, fields func(*E) row) ([]*E, error) {
	if f == nil {
		f = repository.NewFilter()
	}
	columns := fields(new(E))
	check := func(col string) error {
		if _, ok := columns[col]; !ok {
			return fmt.Errorf("memory: columna no permitida %q", col)
		}
		return nil
	}
	for col := range f.Eq {
		if err := check(col); err != nil {
			return nil, err
		}
	}
	for col := range f.In {
		if err := check(col); err != nil {
			return nil, err
		}
	}
	if f.OrderBy != "" {
		if err := check(f.OrderBy); err != nil {
			return nil, err
		}
	}

	out := make([]*E, 0, len(items))
	for _, it := range items {
		if matches(fields(it), f) {
			out = append(out, it)
		}
	}
	if f.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(fields(out[i])[f.OrderBy], fields(out[j])[f.OrderBy])
			if f.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*E{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func matches(r row, f *repository.ListFilter) bool {
	for col, want := range f.Eq {
		if !equal(r[col], want) {
			return false
		}
	}
	for col, values := range f.In {
		found := false
		for _, v := range values {
			if equal(r[col], v) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equal(a, b interface{}) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compare(a, b interface{}) int {
	switch x := a.(type) {
	case time.Time:
		y, _ := b.(time.Time)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
		return 0
	case int:
		y, _ := b.(int)
		return x - y
	case decimal.Decimal:
		y, _ := b.(decimal.Decimal)
		return x.Cmp(y)
	case bool:
		y, _ := b.(bool)
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
