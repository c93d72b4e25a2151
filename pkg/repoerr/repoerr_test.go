package repoerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWrapKeepsCauseAndPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   "23505",
		Detail: "Key (code)=(acme) already exists.",
		Hint:   "try another code",
	}

	wrapped := Wrap(pgErr, "Unable to create company")

	assert.Contains(t, wrapped.Message, "Unable to create company")
	assert.Equal(t, "23505", wrapped.Code)
	assert.Equal(t, "Key (code)=(acme) already exists.", wrapped.Details)
	assert.Equal(t, "try another code", wrapped.Hint)
	assert.True(t, errors.Is(wrapped, pgErr))
}

func TestWrapPropagatesNestedStatus(t *testing.T) {
	inner := NotFound("Company not found")

	wrapped := Wrap(inner, "Unable to load company")

	assert.Equal(t, http.StatusNotFound, wrapped.Status)
	assert.True(t, IsNotFound(wrapped))
}

func TestSingleMissingRowIs404(t *testing.T) {
	_, err := Single[struct{}](nil, gorm.ErrRecordNotFound, "Company not found", "Unable to load company")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Company not found", err.Error())
}

func TestMaybeSingleMissingRowIsNil(t *testing.T) {
	row, err := MaybeSingle[struct{}](nil, gorm.ErrRecordNotFound, "Unable to load company")

	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestListNilBecomesEmptySlice(t *testing.T) {
	rows, err := List[int](nil, nil, "Unable to load rows")

	require.NoError(t, err)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestNoErrorPassesThroughNil(t *testing.T) {
	assert.NoError(t, NoError(nil, "Unable to delete row"))

	err := NoError(errors.New("boom"), "Unable to delete row")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to delete row")
}

func TestStatusOfNonRepositoryError(t *testing.T) {
	assert.Equal(t, 0, StatusOf(errors.New("plain")))
	assert.False(t, IsInvalid(errors.New("plain")))
}
