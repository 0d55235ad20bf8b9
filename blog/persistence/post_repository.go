package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rfenwick/blogapi/blog/domain"
	"github.com/rfenwick/blogapi/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository implements domain.PostRepository against the posts
// and post_tags tables. Every multi-statement operation, including the
// read-only ones, runs inside a single transaction so a post and its tags
// are never observed in a partially-written state.
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

const insertPostQuery = `
	INSERT INTO posts (title, content, category, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
`

const insertPostTagQuery = `
	INSERT INTO post_tags (post_id, tag_name)
	VALUES (?, ?)
`

const updatePostQuery = `
	UPDATE posts
	SET title = ?, content = ?, category = ?, updated_at = ?
	WHERE id = ?
`

const deletePostQuery = `
	DELETE FROM posts WHERE id = ?
`

const deletePostTagsQuery = `
	DELETE FROM post_tags WHERE post_id = ?
`

const selectPostQuery = `
	SELECT id, title, content, category, created_at, updated_at
	FROM posts
	WHERE id = ?
`

const searchPostsQuery = `
	SELECT id, title, content, category, created_at, updated_at
	FROM posts
	WHERE title LIKE ? OR content LIKE ? OR category LIKE ?
`

// Tags are read back in the order their rows were inserted; they were
// persisted already normalized and are never re-sorted.
const selectPostTagsQuery = `
	SELECT tag_name FROM post_tags WHERE post_id = ? ORDER BY rowid
`

// Save inserts the post and its tag rows, then re-reads the stored post by
// its generated id so the returned entity exactly reflects what committed.
func (r *SQLitePostRepository) Save(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	var saved *domain.Post

	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		result, err := executor.ExecContext(txCtx, insertPostQuery,
			post.Title(),
			post.Content(),
			post.Category(),
			post.CreatedAt(),
			post.UpdatedAt(),
		)
		if err != nil {
			return domain.StorageError("failed to insert the post", err)
		}

		postID, err := result.LastInsertId()
		if err != nil {
			return domain.StorageError("failed to read the generated post id", err)
		}

		if err := r.insertTags(txCtx, postID, post.Tags()); err != nil {
			return err
		}

		saved, err = r.fetchPost(txCtx, postID)
		if err != nil {
			return err
		}
		if saved == nil {
			return domain.ConsistencyError("unable to find the saved post")
		}

		return nil
	})
	if err != nil {
		return nil, asEngineError("failed to save the post", err)
	}

	return saved, nil
}

// Update rewrites the post row, replaces its tag rows wholesale, and
// re-reads the stored post. A zero-rows-affected update commits cleanly
// and reports (nil, false, nil) without touching the tag rows.
func (r *SQLitePostRepository) Update(ctx context.Context, post *domain.Post) (*domain.Post, bool, error) {
	var updated *domain.Post
	found := false

	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		result, err := executor.ExecContext(txCtx, updatePostQuery,
			post.Title(),
			post.Content(),
			post.Category(),
			post.UpdatedAt(),
			post.ID(),
		)
		if err != nil {
			return domain.StorageError("failed to update the post", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return domain.StorageError("failed to read the affected row count", err)
		}
		if affected == 0 {
			return nil
		}
		found = true

		if _, err := executor.ExecContext(txCtx, deletePostTagsQuery, post.ID()); err != nil {
			return domain.StorageError("failed to delete the existing post tags", err)
		}

		if err := r.insertTags(txCtx, post.ID(), post.Tags()); err != nil {
			return err
		}

		updated, err = r.fetchPost(txCtx, post.ID())
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ConsistencyError("unable to find the updated post")
		}

		return nil
	})
	if err != nil {
		return nil, false, asEngineError("failed to update the post", err)
	}

	return updated, found, nil
}

// DeleteByID removes the post row in a single statement; the post_tags
// foreign key cascade removes its tag rows in the same operation.
func (r *SQLitePostRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, deletePostQuery, id)
	if err != nil {
		return false, domain.StorageError("failed to delete the post", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, domain.StorageError("failed to read the affected row count", err)
	}

	return affected == 1, nil
}

// FindByID fetches a post with its tags. An absent post is (nil, nil).
func (r *SQLitePostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	var post *domain.Post

	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		var err error
		post, err = r.fetchPost(txCtx, id)
		return err
	})
	if err != nil {
		return nil, asEngineError("failed to find the post", err)
	}

	return post, nil
}

// FindBySearchTerm fetches every post whose title, content or category
// contains term as a case-insensitive substring, each with its full tag
// set. The tags are looked up one query per matched post; result sets are
// expected small, so the extra round-trips are an accepted cost.
func (r *SQLitePostRepository) FindBySearchTerm(ctx context.Context, term string) ([]*domain.Post, error) {
	posts := make([]*domain.Post, 0)

	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		likeTerm := "%" + term + "%"
		rows, err := executor.QueryContext(txCtx, searchPostsQuery, likeTerm, likeTerm, likeTerm)
		if err != nil {
			return domain.StorageError("failed to search the posts", err)
		}

		postRows, err := scanPostRows(rows)
		if err != nil {
			return err
		}

		for _, row := range postRows {
			tags, err := r.selectTags(txCtx, row.ID)
			if err != nil {
				return err
			}
			post, err := row.toDomain(tags)
			if err != nil {
				return err
			}
			posts = append(posts, post)
		}

		return nil
	})
	if err != nil {
		return nil, asEngineError("failed to search the posts", err)
	}

	return posts, nil
}

func (r *SQLitePostRepository) insertTags(ctx context.Context, postID int64, tags []string) error {
	executor := db.GetExecutor(ctx, r.db)
	for _, tag := range tags {
		if _, err := executor.ExecContext(ctx, insertPostTagQuery, postID, tag); err != nil {
			return domain.StorageError("failed to insert the post tags", err)
		}
	}
	return nil
}

func (r *SQLitePostRepository) selectTags(ctx context.Context, postID int64) ([]string, error) {
	executor := db.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, selectPostTagsQuery, postID)
	if err != nil {
		return nil, domain.StorageError("failed to select the post tags", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, domain.StorageError("failed to scan a post tag row", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("error iterating post tag rows", err)
	}

	return tags, nil
}

// fetchPost reads the post row and then its tag rows on the same
// executor, so inside a transaction both reads see one snapshot.
func (r *SQLitePostRepository) fetchPost(ctx context.Context, postID int64) (*domain.Post, error) {
	executor := db.GetExecutor(ctx, r.db)

	var row postRow
	err := executor.QueryRowContext(ctx, selectPostQuery, postID).Scan(
		&row.ID,
		&row.Title,
		&row.Content,
		&row.Category,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.StorageError("failed to select the post", err)
	}

	tags, err := r.selectTags(ctx, postID)
	if err != nil {
		return nil, err
	}

	return row.toDomain(tags)
}

// postRow is a private struct used to scan database rows
type postRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// toDomain reconstitutes a stored row into the domain entity. A stored
// row failing entity validation means the table holds data the entity
// could never have produced, which is a consistency fault, not user input.
func (pr *postRow) toDomain(tags []string) (*domain.Post, error) {
	post, err := domain.ReconstitutePost(pr.ID, pr.Title, pr.Content, pr.Category, tags, pr.CreatedAt, pr.UpdatedAt)
	if err != nil {
		return nil, domain.ConsistencyError("stored post failed validation: " + err.Error())
	}
	return post, nil
}

// scanPostRows drains rows before any further statement runs on the
// transaction's connection; sqlite allows only one active result set.
func scanPostRows(rows *sql.Rows) ([]postRow, error) {
	defer rows.Close()

	postRows := make([]postRow, 0)
	for rows.Next() {
		var row postRow
		err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Content,
			&row.Category,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, domain.StorageError("failed to scan a post row", err)
		}
		postRows = append(postRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("error iterating post rows", err)
	}

	return postRows, nil
}

// asEngineError keeps already-classified errors as they are and wraps
// anything else (begin/commit failures from the transaction helper) as a
// storage error.
func asEngineError(message string, err error) error {
	if _, ok := domain.KindOf(err); ok {
		return err
	}
	return domain.StorageError(message, err)
}
