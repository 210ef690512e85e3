package datastore

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

type ctxKeyTx struct{}

func withTx(ctx context.Context, tx bun.Tx) context.Context {
	return context.WithValue(ctx, ctxKeyTx{}, tx)
}

// idb resolves the bun handle for ctx. Inside AtomicBun.RunInTx this is the
// open transaction, otherwise the plain connection.
func idb(ctx context.Context, db *bun.DB) bun.IDB {
	if tx, ok := ctx.Value(ctxKeyTx{}).(bun.Tx); ok {
		return tx
	}
	return db
}

type AtomicBun struct {
	db *bun.DB
}

func NewAtomicBun(db *bun.DB) *AtomicBun {
	return &AtomicBun{db: db}
}

// RunInTx joins the transaction already on ctx when there is one, so atomic
// units can nest without opening a second transaction.
func (a *AtomicBun) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(ctxKeyTx{}).(bun.Tx); ok {
		return fn(ctx)
	}
	return a.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(withTx(ctx, tx))
	})
}
