package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresQuestionStore struct {
	db *pgxpool.Pool
}

func NewPostgresQuestionStore(db *pgxpool.Pool) *PostgresQuestionStore {
	return &PostgresQuestionStore{db: db}
}

const questionColumns = `
	id, type, text, media_url, options, answer, category, difficulty,
	zones, correct_order, target, is_active, created_at
`

func (s *PostgresQuestionStore) Load(ctx context.Context, f game.Filter) ([]game.Question, error) {
	q := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE is_active = true
		  AND ($1 = '' OR type = $1)
		  AND ($2 = '' OR category = $2)
		  AND ($3 = '' OR difficulty = $3)
	`
	args := []any{string(f.Type), f.Category, string(f.Difficulty)}
	if f.Limit > 0 {
		q += ` LIMIT $4`
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]game.Question, 0)
	for rows.Next() {
		r, err := scanQuestionRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r.toQuestion())
	}
	return out, rows.Err()
}

func (s *PostgresQuestionStore) CreateQuestion(ctx context.Context, in CreateQuestionInput) (QuestionRow, error) {
	optsJSON, zonesJSON, orderJSON, err := marshalQuestionJSON(in.Options, in.Zones, in.CorrectOrder)
	if err != nil {
		return QuestionRow{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO questions
			(type, text, media_url, options, answer, category, difficulty,
			 zones, correct_order, target, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+questionColumns,
		string(in.Type), in.Text, in.MediaURL, optsJSON, in.Answer,
		in.Category, string(in.Difficulty), zonesJSON, orderJSON,
		in.Target, in.IsActive,
	)
	return scanQuestionRow(row.Scan)
}

func (s *PostgresQuestionStore) ListQuestions(ctx context.Context, includeInactive bool) ([]QuestionRow, error) {
	q := `SELECT ` + questionColumns + ` FROM questions`
	if !includeInactive {
		q += ` WHERE is_active = true`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]QuestionRow, 0)
	for rows.Next() {
		r, err := scanQuestionRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresQuestionStore) SetQuestionActive(ctx context.Context, id string, active bool) (QuestionRow, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE questions
		SET is_active = $2
		WHERE id = $1
		RETURNING `+questionColumns,
		id, active,
	)
	r, err := scanQuestionRow(row.Scan)
	if err != nil {
		return QuestionRow{}, ErrQuestionNotFound
	}
	return r, nil
}

func marshalQuestionJSON(options []string, zones []game.Zone, order []string) (opts, zs, ord []byte, err error) {
	if opts, err = json.Marshal(options); err != nil {
		return nil, nil, nil, err
	}
	if zs, err = json.Marshal(zones); err != nil {
		return nil, nil, nil, err
	}
	if ord, err = json.Marshal(order); err != nil {
		return nil, nil, nil, err
	}
	return opts, zs, ord, nil
}

func scanQuestionRow(scan func(dest ...any) error) (QuestionRow, error) {
	var (
		r         QuestionRow
		optsJSON  []byte
		zonesJSON []byte
		orderJSON []byte
		createdAt time.Time
	)
	err := scan(
		&r.ID, &r.Type, &r.Text, &r.MediaURL, &optsJSON, &r.Answer,
		&r.Category, &r.Difficulty, &zonesJSON, &orderJSON, &r.Target,
		&r.IsActive, &createdAt,
	)
	if err != nil {
		return QuestionRow{}, err
	}
	if err := json.Unmarshal(optsJSON, &r.Options); err != nil {
		return QuestionRow{}, err
	}
	if err := json.Unmarshal(zonesJSON, &r.Zones); err != nil {
		return QuestionRow{}, err
	}
	if err := json.Unmarshal(orderJSON, &r.CorrectOrder); err != nil {
		return QuestionRow{}, err
	}
	r.CreatedAt = createdAt.Format(time.RFC3339)
	return r, nil
}
