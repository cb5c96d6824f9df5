package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/domain"
)

// questionColumns is the canonical SELECT column list for questions.
const questionColumns = `id, project_id, text, status, hierarchy, parent_id, created_at`

// SQLiteQuestionRepo implements QuestionRepo using a SQLite database.
type SQLiteQuestionRepo struct {
	db db.DBTX
}

// NewSQLiteQuestionRepo creates a new SQLiteQuestionRepo.
func NewSQLiteQuestionRepo(conn db.DBTX) *SQLiteQuestionRepo {
	return &SQLiteQuestionRepo{db: conn}
}

func (r *SQLiteQuestionRepo) Create(ctx context.Context, q *domain.Question) error {
	query := `INSERT INTO questions (id, project_id, text, status, hierarchy, parent_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID,
		q.ProjectID,
		q.Text,
		string(q.Status),
		q.Hierarchy,
		nullableString(q.ParentID),
		formatTime(q.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting question: %w", err)
	}
	return nil
}

func (r *SQLiteQuestionRepo) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`
	return r.scanQuestion(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteQuestionRepo) FindByText(ctx context.Context, projectID, text string) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE project_id = ? AND text = ?
		ORDER BY created_at, rowid LIMIT 1`
	return r.scanQuestion(r.db.QueryRowContext(ctx, query, projectID, text))
}

// List returns matching questions newest first.
func (r *SQLiteQuestionRepo) List(ctx context.Context, f QuestionFilter) ([]*domain.Question, error) {
	var where []string
	var args []any
	if f.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()
	return r.scanQuestions(rows)
}

func (r *SQLiteQuestionRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE parent_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child questions: %w", err)
	}
	defer rows.Close()
	return r.scanQuestions(rows)
}

func (r *SQLiteQuestionRepo) UpdateText(ctx context.Context, id, text string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE questions SET text = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("updating question text: %w", err)
	}
	return requireAffected(res, "question")
}

func (r *SQLiteQuestionRepo) UpdateStatus(ctx context.Context, id string, status domain.QuestionStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE questions SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating question status: %w", err)
	}
	return requireAffected(res, "question")
}

func (r *SQLiteQuestionRepo) DetachChildren(ctx context.Context, parentID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE questions SET parent_id = NULL WHERE parent_id = ?`, parentID)
	if err != nil {
		return 0, fmt.Errorf("detaching child questions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteQuestionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting question: %w", err)
	}
	return requireAffected(res, "question")
}

func (r *SQLiteQuestionRepo) scanQuestion(row scanner) (*domain.Question, error) {
	var q domain.Question
	var statusStr, createdAtStr string
	var parentID sql.NullString

	err := row.Scan(&q.ID, &q.ProjectID, &q.Text, &statusStr, &q.Hierarchy, &parentID, &createdAtStr)
	if err != nil {
		return nil, notFound(err, "question")
	}

	q.Status = domain.QuestionStatus(statusStr)
	q.ParentID = stringPtr(parentID)
	if q.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &q, nil
}

func (r *SQLiteQuestionRepo) scanQuestions(rows *sql.Rows) ([]*domain.Question, error) {
	var out []*domain.Question
	for rows.Next() {
		q, err := r.scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	return out, nil
}
