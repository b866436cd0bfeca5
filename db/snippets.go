package db

import (
	"database/sql"
	"strings"
	"time"

	"snippetapp/models"
)

// SnippetPatch carries the fields a form submitted. A nil field was absent
// from the request and leaves the stored value alone.
type SnippetPatch struct {
	Description *string
	Done        *bool
}

func ListSnippets() ([]models.Snippet, error) {
	rows, err := DB.Query("SELECT id, description, done, user_id, created_at, updated_at FROM snippets ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snippets []models.Snippet
	for rows.Next() {
		var s models.Snippet
		if err := rows.Scan(&s.ID, &s.Description, &s.Done, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		snippets = append(snippets, s)
	}
	return snippets, rows.Err()
}

func FindSnippetByID(id int) (*models.Snippet, error) {
	var s models.Snippet
	err := DB.QueryRow("SELECT id, description, done, user_id, created_at, updated_at FROM snippets WHERE id = ?", id).
		Scan(&s.ID, &s.Description, &s.Done, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSnippetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func CreateSnippet(description string, done bool, userID int) (*models.Snippet, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	now := time.Now()
	result, err := DB.Exec("INSERT INTO snippets (description, done, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		description, done, userID, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Snippet{
		ID:          int(id),
		Description: description,
		Done:        done,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateSnippet applies the patch to the snippet. When no field actually
// changes value, nothing is written and updated_at keeps its old value; the
// returned bool tells the caller which of the two success outcomes happened.
func UpdateSnippet(s *models.Snippet, patch SnippetPatch) (bool, error) {
	changed := false

	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return false, ErrDescriptionRequired
		}
		if description != s.Description {
			s.Description = description
			changed = true
		}
	}
	if patch.Done != nil && *patch.Done != s.Done {
		s.Done = *patch.Done
		changed = true
	}

	if !changed {
		return false, nil
	}

	s.UpdatedAt = time.Now()
	_, err := DB.Exec("UPDATE snippets SET description = ?, done = ?, updated_at = ? WHERE id = ?",
		s.Description, s.Done, s.UpdatedAt, s.ID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func DeleteSnippet(id int) error {
	result, err := DB.Exec("DELETE FROM snippets WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSnippetNotFound
	}
	return nil
}
