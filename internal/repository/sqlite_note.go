package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/domain"
)

// noteSelect joins each note with its URL, if any.
const noteSelect = `SELECT n.id, n.question_id, n.url_id, n.note, n.created_at,
		u.id, u.project_id, u.url, u.title, u.created_at
	FROM question_notes n
	LEFT JOIN url_infos u ON u.id = n.url_id`

// SQLiteNoteRepo implements NoteRepo using a SQLite database.
type SQLiteNoteRepo struct {
	db db.DBTX
}

// NewSQLiteNoteRepo creates a new SQLiteNoteRepo.
func NewSQLiteNoteRepo(conn db.DBTX) *SQLiteNoteRepo {
	return &SQLiteNoteRepo{db: conn}
}

func (r *SQLiteNoteRepo) Create(ctx context.Context, n *domain.QuestionNote) error {
	query := `INSERT INTO question_notes (id, question_id, url_id, note, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.QuestionID,
		nullableString(n.URLID),
		n.Note,
		formatTime(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting question note: %w", err)
	}
	return nil
}

func (r *SQLiteNoteRepo) GetByID(ctx context.Context, id string) (*domain.QuestionNote, error) {
	return r.scanNote(r.db.QueryRowContext(ctx, noteSelect+` WHERE n.id = ?`, id))
}

func (r *SQLiteNoteRepo) ListByQuestion(ctx context.Context, questionID string) ([]*domain.QuestionNote, error) {
	return r.list(ctx, noteSelect+` WHERE n.question_id = ? ORDER BY n.created_at, n.rowid`, questionID)
}

func (r *SQLiteNoteRepo) ListByQuestionNewestFirst(ctx context.Context, questionID string) ([]*domain.QuestionNote, error) {
	return r.list(ctx, noteSelect+` WHERE n.question_id = ? ORDER BY n.created_at DESC, n.rowid DESC`, questionID)
}

func (r *SQLiteNoteRepo) ListByURL(ctx context.Context, urlID string) ([]*domain.QuestionNote, error) {
	return r.list(ctx, noteSelect+` WHERE n.url_id = ? ORDER BY n.created_at, n.rowid`, urlID)
}

func (r *SQLiteNoteRepo) UpdateText(ctx context.Context, id, note string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE question_notes SET note = ? WHERE id = ?`, note, id)
	if err != nil {
		return fmt.Errorf("updating question note: %w", err)
	}
	return requireAffected(res, "question note")
}

func (r *SQLiteNoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM question_notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting question note: %w", err)
	}
	return requireAffected(res, "question note")
}

func (r *SQLiteNoteRepo) DeleteByQuestion(ctx context.Context, questionID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM question_notes WHERE question_id = ?`, questionID)
	if err != nil {
		return 0, fmt.Errorf("deleting notes of question %s: %w", questionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteNoteRepo) ReplaceForQuestion(ctx context.Context, questionID string, notes []*domain.QuestionNote) error {
	if _, err := r.DeleteByQuestion(ctx, questionID); err != nil {
		return err
	}
	for i, n := range notes {
		if n.QuestionID != questionID {
			return fmt.Errorf("note %d belongs to question %s, not %s", i, n.QuestionID, questionID)
		}
		if err := r.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteNoteRepo) list(ctx context.Context, query string, args ...any) ([]*domain.QuestionNote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing question notes: %w", err)
	}
	defer rows.Close()

	var out []*domain.QuestionNote
	for rows.Next() {
		n, err := r.scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating question notes: %w", err)
	}
	return out, nil
}

func (r *SQLiteNoteRepo) scanNote(row scanner) (*domain.QuestionNote, error) {
	var n domain.QuestionNote
	var createdAtStr string
	var urlID sql.NullString
	var uID, uProjectID, uURL, uTitle, uCreatedAt sql.NullString

	err := row.Scan(
		&n.ID, &n.QuestionID, &urlID, &n.Note, &createdAtStr,
		&uID, &uProjectID, &uURL, &uTitle, &uCreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "question note")
	}

	if n.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	n.URLID = stringPtr(urlID)
	if uID.Valid {
		u := &domain.URLInfo{
			ID:        uID.String,
			ProjectID: uProjectID.String,
			URL:       uURL.String,
			Title:     uTitle.String,
		}
		if u.CreatedAt, err = parseTime(uCreatedAt.String); err != nil {
			return nil, fmt.Errorf("parsing url created_at: %w", err)
		}
		n.URL = u
	}
	return &n, nil
}
