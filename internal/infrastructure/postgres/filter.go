package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

// columns lista permitida por colección: nombre lógico → expresión SQL.
// Nada que no esté aquí llega a la consulta.
var columns = map[string]map[string]string{
	repository.CollectionUsers: {
		"email":       "u.email",
		"is_active":   "u.is_active",
		"is_verified": "u.is_verified",
		"role":        "r.name",
		"created_at":  "u.created_at",
	},
	repository.CollectionProducts: {
		"seller_id":     "p.seller_id",
		"status":        "p.status",
		"category_id":   "p.category_id",
		"currency_code": "p.currency_code",
		"is_active":     "p.is_active",
		"is_verified":   "p.is_verified",
		"name":          "p.name",
		"price":         "p.price",
		"created_at":    "p.created_at",
		"updated_at":    "p.updated_at",
	},
	repository.CollectionRFQs: {
		"buyer_id":   "q.buyer_id",
		"seller_id":  "q.seller_id",
		"product_id": "q.product_id",
		"status":     "q.status",
		"created_at": "q.created_at",
		"updated_at": "q.updated_at",
	},
	repository.CollectionNotifications: {
		"user_id":    "user_id",
		"is_read":    "is_read",
		"type":       "type",
		"created_at": "created_at",
	},
	repository.CollectionContactSubmission: {
		"status":     "status",
		"email":      "email",
		"created_at": "created_at",
	},
}

// buildWhere compila el filtro en " WHERE ... ORDER BY ... LIMIT ... OFFSET ..." con
// placeholders numerados desde $1. Columnas fuera de la lista permitida devuelven error.
func buildWhere(collection string, f *repository.ListFilter) (string, []any, error) {
	allowed, ok := columns[collection]
	if !ok {
		return "", nil, fmt.Errorf("colección sin filtros: %s", collection)
	}
	if f == nil {
		f = repository.NewFilter()
	}
	var (
		conds []string
		args  []any
	)
	// Orden estable de columnas para que el SQL generado sea determinista.
	for _, col := range sortedKeys(f.Eq) {
		expr, ok := allowed[col]
		if !ok {
			return "", nil, fmt.Errorf("columna no permitida %q en %s", col, collection)
		}
		args = append(args, f.Eq[col])
		conds = append(conds, fmt.Sprintf("%s = $%d", expr, len(args)))
	}
	for _, col := range sortedKeys(f.In) {
		expr, ok := allowed[col]
		if !ok {
			return "", nil, fmt.Errorf("columna no permitida %q en %s", col, collection)
		}
		values := f.In[col]
		ph := make([]string, len(values))
		for i, v := range values {
			args = append(args, v)
			ph[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, fmt.Sprintf("%s IN (%s)", expr, strings.Join(ph, ", ")))
	}

	var b strings.Builder
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	if f.OrderBy != "" {
		expr, ok := allowed[f.OrderBy]
		if !ok {
			return "", nil, fmt.Errorf("columna de orden no permitida %q en %s", f.OrderBy, collection)
		}
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", expr, dir)
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
