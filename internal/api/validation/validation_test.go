package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/api/apperr"
)

func TestUsername_Valid(t *testing.T) {
	for _, name := range []string{"alice", "bob.smith", "user@host", "a+b-c_d", "A1"} {
		assert.NoError(t, Username(name), name)
	}
}

func TestUsername_InvalidCharacters(t *testing.T) {
	for _, name := range []string{"has space", "semi;colon", "тест", "tab\tname", "slash/name"} {
		err := Username(name)
		assert.Error(t, err, name)
		assert.True(t, errors.Is(err, apperr.ErrValidation), name)
	}
}

func TestUsername_ReportsOffendingCharacters(t *testing.T) {
	err := Username("bad!name!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "!")
	// each offending character reported once
	assert.Equal(t, 1, strings.Count(err.Error(), "!"))
}

func TestUsername_MeReserved(t *testing.T) {
	err := Username("me")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestUsername_Length(t *testing.T) {
	assert.NoError(t, Username(strings.Repeat("a", 150)))
	assert.Error(t, Username(strings.Repeat("a", 151)))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("user@example.com"))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email(""))
	assert.Error(t, Email(strings.Repeat("a", 250)+"@example.com"))
}

func TestYear(t *testing.T) {
	now := time.Now().Year()

	assert.NoError(t, Year(now))
	assert.NoError(t, Year(1895))
	assert.NoError(t, Year(-500)) // no lower bound

	err := Year(now + 1)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestSlug(t *testing.T) {
	assert.NoError(t, Slug("science-fiction"))
	assert.NoError(t, Slug("top_10"))
	assert.Error(t, Slug(""))
	assert.Error(t, Slug("with space"))
	assert.Error(t, Slug("with/slash"))
	assert.Error(t, Slug(strings.Repeat("x", 51)))
}
