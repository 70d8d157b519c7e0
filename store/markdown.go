// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"path/filepath"

	"github.com/yuin/goldmark"

	"github.com/danielhkuo/rangepoll/models"
)

// Description resolves a poll's display description: the plain description
// if present, else the desc_markdown file (relative to the poll directory)
// rendered to HTML, else the poll id.
func (s *PollStore) Description(poll *models.Poll) (string, error) {
	return s.resolveDesc(poll.Description, poll.DescMarkdown, poll.ID)
}

// ChoiceDescription resolves one choice's description with the same rules.
func (s *PollStore) ChoiceDescription(choice *models.Choice) (string, error) {
	return s.resolveDesc(choice.Description, choice.DescMarkdown, choice.Name)
}

func (s *PollStore) resolveDesc(plain, markdown, fallback string) (string, error) {
	if plain != "" {
		return plain, nil
	}
	if markdown == "" {
		return fallback, nil
	}

	// Markdown references are file names resolved next to the record.
	path := filepath.Join(s.dir, filepath.Base(markdown))
	content, err := readRetry(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(content, &buf); err != nil {
		return "", &models.StorageError{Op: "render", Path: path, Err: err}
	}
	return buf.String(), nil
}
