package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostingValidate(t *testing.T) {
	assert.NoError(t, Posting{ID: "j1"}.Validate())
	assert.NoError(t, Posting{ID: "j1", SalaryMin: money(10), SalaryMax: money(10)}.Validate())

	err := Posting{ID: "j1", SalaryMin: money(20), SalaryMax: money(10)}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidPosting))

	err = Posting{}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidPosting))
}

func TestPostingText(t *testing.T) {
	p := Posting{Position: "Backend Engineer", Description: "  ", Requirements: "Go, SQL"}
	assert.Equal(t, "Backend Engineer\nGo, SQL", p.Text())
	assert.True(t, p.HasText())
	assert.False(t, Posting{Name: "Acme"}.HasText())
}
