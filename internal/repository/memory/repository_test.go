package memory

import (
	"testing"

	"github.com/mamadbah2/hotelbudget/internal/repository"
	"github.com/mamadbah2/hotelbudget/internal/repository/repositorytest"
)

func TestRepository(t *testing.T) {
	repositorytest.Run(t, func(*testing.T) repository.RecordRepository {
		return NewRepository()
	})
}
