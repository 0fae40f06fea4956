package pgsql

import (
	portsrepo "github.com/fundline/mca_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BusinessRepo: newPgxBusinessRepository(dbPool),
		HistoryRepo:  newPgxHistoryRepository(dbPool),
	}
}
