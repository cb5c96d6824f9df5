package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/domain"
)

const urlInfoColumns = `id, project_id, url, title, created_at`

// SQLiteURLInfoRepo implements URLInfoRepo using a SQLite database.
type SQLiteURLInfoRepo struct {
	db db.DBTX
}

// NewSQLiteURLInfoRepo creates a new SQLiteURLInfoRepo.
func NewSQLiteURLInfoRepo(conn db.DBTX) *SQLiteURLInfoRepo {
	return &SQLiteURLInfoRepo{db: conn}
}

// GetOrCreate relies on the UNIQUE(project_id, url) constraint: the insert is
// a no-op when the pair exists, and the follow-up read returns whichever row
// won. The title of an existing row is never overwritten.
func (r *SQLiteURLInfoRepo) GetOrCreate(ctx context.Context, candidate *domain.URLInfo) (*domain.URLInfo, bool, error) {
	query := `INSERT INTO url_infos (id, project_id, url, title, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (project_id, url) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		candidate.ID,
		candidate.ProjectID,
		candidate.URL,
		candidate.Title,
		formatTime(candidate.CreatedAt),
	)
	if err != nil {
		return nil, false, fmt.Errorf("inserting url info: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("reading rows affected: %w", err)
	}

	u, err := r.GetByURL(ctx, candidate.ProjectID, candidate.URL)
	if err != nil {
		return nil, false, err
	}
	return u, n > 0, nil
}

func (r *SQLiteURLInfoRepo) GetByID(ctx context.Context, id string) (*domain.URLInfo, error) {
	query := `SELECT ` + urlInfoColumns + ` FROM url_infos WHERE id = ?`
	return r.scanURLInfo(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteURLInfoRepo) GetByURL(ctx context.Context, projectID, url string) (*domain.URLInfo, error) {
	query := `SELECT ` + urlInfoColumns + ` FROM url_infos WHERE project_id = ? AND url = ?`
	return r.scanURLInfo(r.db.QueryRowContext(ctx, query, projectID, url))
}

func (r *SQLiteURLInfoRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.URLInfo, error) {
	query := `SELECT ` + urlInfoColumns + ` FROM url_infos WHERE project_id = ?
		ORDER BY created_at DESC, rowid DESC`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteURLInfoRepo) ListAll(ctx context.Context) ([]*domain.URLInfo, error) {
	query := `SELECT ` + urlInfoColumns + ` FROM url_infos ORDER BY created_at DESC, rowid DESC`
	return r.list(ctx, query)
}

func (r *SQLiteURLInfoRepo) list(ctx context.Context, query string, args ...any) ([]*domain.URLInfo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing url infos: %w", err)
	}
	defer rows.Close()

	var out []*domain.URLInfo
	for rows.Next() {
		u, err := r.scanURLInfo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating url infos: %w", err)
	}
	return out, nil
}

func (r *SQLiteURLInfoRepo) scanURLInfo(row scanner) (*domain.URLInfo, error) {
	var u domain.URLInfo
	var createdAtStr string
	if err := row.Scan(&u.ID, &u.ProjectID, &u.URL, &u.Title, &createdAtStr); err != nil {
		return nil, notFound(err, "url info")
	}
	var err error
	if u.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &u, nil
}
