package ledger

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the snapshot in the players table. Save rewrites the
// table inside one transaction, so a crash mid-flush leaves the previous
// snapshot intact.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and verifies the connection before
// returning the store. The players table must exist; run cmd/migrate first.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	log.Println("[LEDGER] Postgres connected")

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (map[string]Player, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, nick, balance FROM players`)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	defer rows.Close()

	players := make(map[string]Player)
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Nick, &p.Balance); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return players, nil
}

func (s *PostgresStore) Save(ctx context.Context, players map[string]Player) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE players`); err != nil {
		return fmt.Errorf("truncate players: %w", err)
	}

	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(
			`INSERT INTO players (id, nick, balance, updated_at) VALUES ($1, $2, $3, now())`,
			p.ID, p.Nick, p.Balance,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range players {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert player: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) Health(ctx context.Context) map[string]string {
	stats := map[string]string{"backend": "postgres"}

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("postgres down: %v", err)
		return stats
	}
	stats["status"] = "up"

	poolStats := s.pool.Stat()
	stats["total_conns"] = strconv.FormatInt(int64(poolStats.TotalConns()), 10)
	stats["idle_conns"] = strconv.FormatInt(int64(poolStats.IdleConns()), 10)
	stats["acquired_conns"] = strconv.FormatInt(int64(poolStats.AcquiredConns()), 10)

	return stats
}

func (s *PostgresStore) Close() error {
	log.Println("[LEDGER] Disconnecting from Postgres")
	s.pool.Close()
	return nil
}
