package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"questgen-backend/internal/models"
)

type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

// CreateBatch inserts one record per generated question. Records are
// never updated afterwards.
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []*models.Question) error {
	query := `INSERT INTO questions (id, text, answer, explanation, topic, difficulty, question_type, marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`

	for _, q := range questions {
		q.ID = uuid.New()
		err := r.pool.QueryRow(ctx, query,
			q.ID, q.Text, q.Answer, q.Explanation, q.Topic, q.Difficulty, q.QuestionType, q.Marks,
		).Scan(&q.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}

	return nil
}

// List returns a newest-first page of the history, filtered by topic
// substring and exact difficulty when given, plus the unpaged total.
func (r *QuestionRepo) List(ctx context.Context, topic, difficulty string, limit, offset int) ([]*models.Question, int, error) {
	var args []interface{}
	argIdx := 1

	where := "WHERE TRUE"
	if topic != "" {
		where += fmt.Sprintf(" AND topic ILIKE $%d", argIdx)
		args = append(args, "%"+topic+"%")
		argIdx++
	}
	if difficulty != "" {
		where += fmt.Sprintf(" AND difficulty = $%d", argIdx)
		args = append(args, difficulty)
		argIdx++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM questions " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, text, answer, explanation, topic, difficulty, question_type, marks, created_at
		FROM questions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		err := rows.Scan(&q.ID, &q.Text, &q.Answer, &q.Explanation, &q.Topic, &q.Difficulty, &q.QuestionType, &q.Marks, &q.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}

	return questions, total, nil
}
