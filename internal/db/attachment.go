package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// Attachment is an uploaded binary: a site photo, a rendered graph or a
// supporting document. The blob is stored in the row with its sha256 so
// re-uploads can be spotted.
type Attachment struct {
	ID          int    `json:"id"`
	OwnerID     int    `json:"owner_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SHA256      string `json:"sha256"`
	Size        int    `json:"size"`
	CreatedAt   string `json:"created_at"`

	Data []byte `json:"-"`
}

// Attachment kinds map 1:1 to tables.
const (
	KindImage = "image" // measurement_images, owned by a measurement
	KindGraph = "graph" // measurement_graphs, owned by a measurement
	KindFile  = "file"  // site_files, owned by a survey
)

func attachmentTable(kind string) (table, ownerCol string, err error) {
	switch kind {
	case KindImage:
		return "measurement_images", "measurement_id", nil
	case KindGraph:
		return "measurement_graphs", "measurement_id", nil
	case KindFile:
		return "site_files", "survey_id", nil
	}
	return "", "", fmt.Errorf("unknown attachment kind %q", kind)
}

// AddAttachment stores a blob of the given kind under its owner and
// returns the stored row.
func (db *DB) AddAttachment(kind string, ownerID int, filename, contentType string, data []byte) (*Attachment, error) {
	table, ownerCol, err := attachmentTable(kind)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("refusing to store empty %s %q", kind, filename)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	sum := sha256.Sum256(data)
	att := &Attachment{
		OwnerID:     ownerID,
		Filename:    filename,
		ContentType: contentType,
		SHA256:      hex.EncodeToString(sum[:]),
		Size:        len(data),
		CreatedAt:   nowISO(),
		Data:        data,
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, filename, content_type, sha256, data, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		table, ownerCol)
	result, err := db.Exec(query, ownerID, filename, contentType, att.SHA256, data, att.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", kind, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	att.ID = int(id)
	return att, nil
}

// GetAttachment retrieves one blob by kind and ID, data included.
func (db *DB) GetAttachment(kind string, id int) (*Attachment, error) {
	table, ownerCol, err := attachmentTable(kind)
	if err != nil {
		return nil, err
	}
	var att Attachment
	query := fmt.Sprintf(
		`SELECT id, %s, filename, content_type, sha256, length(data), data, created_at FROM %s WHERE id = ?`,
		ownerCol, table)
	err = db.QueryRow(query, id).Scan(
		&att.ID, &att.OwnerID, &att.Filename, &att.ContentType, &att.SHA256, &att.Size, &att.Data, &att.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s not found", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return &att, nil
}

// ListAttachments returns an owner's attachments without their blobs,
// oldest first.
func (db *DB) ListAttachments(kind string, ownerID int) ([]Attachment, error) {
	table, ownerCol, err := attachmentTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		`SELECT id, %s, filename, content_type, sha256, length(data), created_at FROM %s WHERE %s = ? ORDER BY id ASC`,
		ownerCol, table, ownerCol)
	rows, err := db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s attachments: %w", kind, err)
	}
	defer rows.Close()

	var atts []Attachment
	for rows.Next() {
		var att Attachment
		if err := rows.Scan(&att.ID, &att.OwnerID, &att.Filename, &att.ContentType, &att.SHA256, &att.Size, &att.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		atts = append(atts, att)
	}
	return atts, rows.Err()
}

// DeleteAttachment removes one blob by kind and ID.
func (db *DB) DeleteAttachment(kind string, id int) error {
	table, _, err := attachmentTable(kind)
	if err != nil {
		return err
	}
	result, err := db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s not found", kind)
	}
	return nil
}
