package domain

import (
	"slices"
	"strings"
	"time"
)

// Post is a short-form article with a normalized tag set. All fields are
// validated at construction and immutable afterwards, except the identity,
// which the persistence layer assigns exactly once after the first insert.
type Post struct {
	id        int64
	title     string
	content   string
	category  string
	tags      []string
	createdAt time.Time
	updatedAt time.Time
}

// NewPost builds a fresh, not-yet-persisted post. UpdatedAt starts equal
// to createdAt.
func NewPost(title, content, category string, tags []string, createdAt time.Time) (*Post, error) {
	return ReconstitutePost(0, title, content, category, tags, createdAt, createdAt)
}

// ReconstitutePost rebuilds a post from already-persisted state, or an
// updated in-memory revision of one. It runs the same validation pipeline
// as NewPost; no post ever exists with a field unassigned or unvalidated.
func ReconstitutePost(id int64, title, content, category string, tags []string, createdAt, updatedAt time.Time) (*Post, error) {
	title, err := validateText(title, "Title")
	if err != nil {
		return nil, err
	}
	content, err = validateText(content, "Content")
	if err != nil {
		return nil, err
	}
	category, err = validateText(category, "Category")
	if err != nil {
		return nil, err
	}
	if tags == nil {
		return nil, NullArgumentError("Tag list")
	}
	if createdAt.IsZero() {
		return nil, NullArgumentError("Created Time")
	}
	if updatedAt.IsZero() {
		return nil, NullArgumentError("Updated Time")
	}
	if updatedAt.Before(createdAt) {
		return nil, InvalidArgumentError("Updated Time cannot be before the Created Time")
	}

	return &Post{
		id:        id,
		title:     title,
		content:   content,
		category:  category,
		tags:      NormalizeTags(tags),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func validateText(value, fieldName string) (string, error) {
	stripped := strings.TrimSpace(value)
	if stripped == "" {
		return "", InvalidArgumentError(fieldName + " cannot be EMPTY or BLANK")
	}
	return stripped, nil
}

// NormalizeTags discards blank entries, trims surrounding whitespace,
// uppercases, and drops duplicates of the normalized value while keeping
// first-occurrence order. Normalizing an already-normalized list returns
// an equal list.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToUpper(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

func (p *Post) ID() int64 {
	return p.id
}

// SetID records the storage-assigned identity. This is the only mutation
// a post permits.
func (p *Post) SetID(id int64) {
	p.id = id
}

func (p *Post) Title() string {
	return p.title
}

func (p *Post) Content() string {
	return p.content
}

func (p *Post) Category() string {
	return p.category
}

// Tags returns a copy; the post's own tag list never changes.
func (p *Post) Tags() []string {
	return slices.Clone(p.tags)
}

func (p *Post) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Post) UpdatedAt() time.Time {
	return p.updatedAt
}

// Equal reports whether two posts carry the same content. Identity is
// deliberately excluded: a fresh post and its persisted counterpart are
// equal.
func (p *Post) Equal(other *Post) bool {
	if other == nil {
		return false
	}
	return p.title == other.title &&
		p.content == other.content &&
		p.category == other.category &&
		slices.Equal(p.tags, other.tags) &&
		p.createdAt.Equal(other.createdAt) &&
		p.updatedAt.Equal(other.updatedAt)
}
