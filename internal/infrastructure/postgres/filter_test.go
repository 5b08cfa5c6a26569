package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

func TestBuildWhere_EqInOrderPage(t *testing.T) {
	f := repository.NewFilter().
		Where("status", "approved").
		Where("is_active", true).
		WhereIn("currency_code", "USD", "EUR").
		Order("price", false).
		Page(20, 40)

	sql, args, err := buildWhere(repository.CollectionProducts, f)
	require.NoError(t, err)
	assert.Equal(t,
		" WHERE p.is_active = $1 AND p.status = $2 AND p.currency_code IN ($3, $4) ORDER BY p.price ASC LIMIT $5 OFFSET $6",
		sql)
	assert.Equal(t, []any{true, "approved", "USD", "EUR", 20, 40}, args)
}

func TestBuildWhere_DefaultFilter(t *testing.T) {
	sql, args, err := buildWhere(repository.CollectionNotifications, nil)
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY created_at DESC", sql)
	assert.Empty(t, args)
}

func TestBuildWhere_RechazaColumnasFueraDeLista(t *testing.T) {
	_, _, err := buildWhere(repository.CollectionUsers, repository.NewFilter().Where("password_hash", "x"))
	assert.Error(t, err)

	_, _, err = buildWhere(repository.CollectionRFQs, repository.NewFilter().Order("1; DROP TABLE rfqs", true))
	assert.Error(t, err)

	_, _, err = buildWhere("roles", nil)
	assert.Error(t, err)
}

func TestBuildWhere_WhereInVacioNoAgregaCondicion(t *testing.T) {
	sql, _, err := buildWhere(repository.CollectionRFQs, repository.NewFilter().WhereIn("status").Order("", false))
	require.NoError(t, err)
	assert.Equal(t, "", sql)
}
