package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/networth-server/internal/config"
	"github.com/carson-networks/networth-server/internal/storage/account"
	"github.com/carson-networks/networth-server/internal/storage/asset"
	"github.com/carson-networks/networth-server/internal/storage/bankconnection"
	"github.com/carson-networks/networth-server/internal/storage/rate"
	"github.com/carson-networks/networth-server/internal/storage/snapshot"
	"github.com/carson-networks/networth-server/internal/storage/transaction"
	"github.com/carson-networks/networth-server/internal/storage/user"
)

// Storage is the root of the persistence layer. Table fields are
// interfaces so engines and services can be tested with fakes.
type Storage struct {
	DB  *sql.DB
	bdb bob.DB

	Users        user.ITable
	Accounts     account.ITable
	Transactions transaction.ITable
	Assets       asset.ITable
	Snapshots    snapshot.ITable
	Connections  bankconnection.ITable
	Rates        rate.ITable
}

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}

	bdb := bob.NewDB(db)

	return &Storage{
		DB:           db,
		bdb:          bdb,
		Users:        user.NewReader(db),
		Accounts:     account.NewReader(bdb),
		Transactions: transaction.NewReader(bdb),
		Assets:       asset.NewReader(db),
		Snapshots:    snapshot.NewTable(db),
		Connections:  bankconnection.NewTable(db),
		Rates:        rate.NewTable(db),
	}
}

// Write opens a transaction wrapped in a Writer. The caller must Commit
// or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
