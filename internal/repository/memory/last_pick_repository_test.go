package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastPickRepositoryRoundTrip(t *testing.T) {
	repo := NewLastPickRepository()

	_, found := repo.Get(5)
	assert.False(t, found)

	repo.Set(5, 100)
	author, found := repo.Get(5)
	assert.True(t, found)
	assert.Equal(t, int64(100), author)
}

func TestLastPickRepositoryLastWriterWins(t *testing.T) {
	repo := NewLastPickRepository()

	repo.Set(5, 100)
	repo.Set(5, 200)

	author, _ := repo.Get(5)
	assert.Equal(t, int64(200), author)
}

func TestLastPickRepositoryIsPerUser(t *testing.T) {
	repo := NewLastPickRepository()

	repo.Set(5, 100)
	repo.Set(6, 300)

	a, _ := repo.Get(5)
	b, _ := repo.Get(6)
	assert.Equal(t, int64(100), a)
	assert.Equal(t, int64(300), b)
}
