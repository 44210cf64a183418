package planstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
)

// Config for the Postgres-backed plan store.
type Config struct {
	DSN          string        `envconfig:"DSN" split_words:"true" required:"true"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"4"`
	PingTimeout  time.Duration `envconfig:"PING_TIMEOUT" split_words:"true" default:"5s"`
}

type planRow struct {
	bun.BaseModel `bun:"table:debt_plans"`

	ID            string          `bun:"id,pk"`
	PlanType      string          `bun:"plan_type,notnull"`
	AssistantType string          `bun:"assistant_type,notnull"`
	UserID        string          `bun:"user_id,notnull"`
	Document      json.RawMessage `bun:"document,type:jsonb,notnull"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp"`
}

// PostgresStore persists plans as one JSONB document per row. The schedule
// is written and read whole; no per-month rows exist in the database.
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore opens the connection pool and verifies connectivity. The
// debt_plans table is created when missing.
func NewPostgresStore(ctx context.Context, cfg Config) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping plan database: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*planRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("ensure debt_plans table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Put(ctx context.Context, key Key, plan debtplan.Plan) (string, error) {
	if key.UserID == "" {
		return "", fmt.Errorf("%w: user id is required", contractx.ErrValidation)
	}
	if key.PlanType == "" {
		key.PlanType = DebtPlanType
	}

	document, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("%w: marshal plan: %v", contractx.ErrValidation, err)
	}

	row := &planRow{
		ID:            uuid.NewString(),
		PlanType:      key.PlanType,
		AssistantType: string(key.AssistantType),
		UserID:        key.UserID,
		Document:      document,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}

	log.Debug().
		Str("plan_id", row.ID).
		Str("user_id", key.UserID).
		Msg("plan persisted")
	return row.ID, nil
}

func (s *PostgresStore) FindMostRecent(ctx context.Context, key Key) (Stored, error) {
	if key.PlanType == "" {
		key.PlanType = DebtPlanType
	}

	row := new(planRow)
	err := s.db.NewSelect().
		Model(row).
		Where("plan_type = ?", key.PlanType).
		Where("assistant_type = ?", string(key.AssistantType)).
		Where("user_id = ?", key.UserID).
		OrderExpr("created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Stored{}, ErrPlanNotFound
	}
	if err != nil {
		return Stored{}, fmt.Errorf("select plan: %w", err)
	}

	var plan debtplan.Plan
	if err := json.Unmarshal(row.Document, &plan); err != nil {
		return Stored{}, fmt.Errorf("%w: decode stored plan %s: %v", contractx.ErrValidation, row.ID, err)
	}
	return Stored{ID: row.ID, Key: key, Plan: plan}, nil
}
