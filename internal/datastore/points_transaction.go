package datastore

import (
	"context"
	"time"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePointsTransaction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PointsTransaction)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PointsTransaction)(nil)).Index("index_points_transaction_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreatePointsTransaction(ctx context.Context, db bun.IDB, tx *models.PointsTransaction) error {
	tx.CreatedAt = time.Now()
	_, err := db.NewInsert().Model(tx).Exec(ctx)
	return err
}

func GetPointsTransactionsByUser(ctx context.Context, db bun.IDB, userID string, limit int) ([]models.PointsTransaction, error) {
	var txs []models.PointsTransaction
	q := db.NewSelect().Model(&txs).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(ctx)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func GetPointsTransactionsByUserAndType(ctx context.Context, db bun.IDB, userID string, eventType string) ([]models.PointsTransaction, error) {
	var txs []models.PointsTransaction
	err := db.NewSelect().Model(&txs).
		Where("user_id = ?", userID).
		Where("event_type = ?", eventType).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

// SumPointsByUser derives the signed balance of a user's ledger.
func SumPointsByUser(ctx context.Context, db bun.IDB, userID string) (int64, error) {
	var sum int64
	err := db.NewSelect().
		Model((*models.PointsTransaction)(nil)).
		ColumnExpr("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(ctx, &sum)
	if err != nil {
		return 0, err
	}

	return sum, nil
}

type PointsTransactionStore struct {
	db *bun.DB
}

func NewPointsTransactionStore(db *bun.DB) *PointsTransactionStore {
	return &PointsTransactionStore{db: db}
}

func (s *PointsTransactionStore) Insert(ctx context.Context, tx *models.PointsTransaction) error {
	return CreatePointsTransaction(ctx, idb(ctx, s.db), tx)
}

func (s *PointsTransactionStore) FindByUser(ctx context.Context, userID string, limit int) ([]models.PointsTransaction, error) {
	return GetPointsTransactionsByUser(ctx, idb(ctx, s.db), userID, limit)
}

func (s *PointsTransactionStore) FindByUserAndType(ctx context.Context, userID string, eventType string) ([]models.PointsTransaction, error) {
	return GetPointsTransactionsByUserAndType(ctx, idb(ctx, s.db), userID, eventType)
}

func (s *PointsTransactionStore) SumByUser(ctx context.Context, userID string) (int64, error) {
	return SumPointsByUser(ctx, idb(ctx, s.db), userID)
}
