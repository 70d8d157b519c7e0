// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/rangepoll/models"
)

// PollTemplate returns an example poll record, used by the -gen-poll flag to
// bootstrap a fresh installation.
func PollTemplate() *models.Poll {
	return &models.Poll{
		Name:                "Best fruit",
		Description:         "Choose your best fruit",
		AllowedParticipants: []string{"John", "Bob", "Isaac"},
		Deadline:            models.NewDeadline(time.Now().Add(7 * 24 * time.Hour)),
		Choices: []models.Choice{
			{
				Name:        "pear",
				Description: "A pear is good",
				Votes:       []int{3, 4},
				Voters:      []string{"John", "Bob"},
			},
			{
				Name:        "apple",
				Description: "An apple a day...",
				Votes:       []int{5, 2},
				Voters:      []string{"John", "Bob"},
			},
		},
		Algorithm: models.AlgorithmBordat,
	}
}

// VoterTemplate returns an example voter record, used by the -gen-voter
// flag. The first voter of a fresh installation should be an admin.
func VoterTemplate(admin bool) *models.Voter {
	return &models.Voter{
		Username:     "Isaac",
		Fullname:     "Isaac Newton",
		Email:        "notinventedyet@newton.co.uk",
		Presentation: "I'm one of the best physicists",
		Password:     "change me before first use",
		Admin:        admin,
	}
}

// WriteTemplate serializes any record to the given path.
func WriteTemplate(path string, record interface{}) error {
	out, err := yaml.Marshal(record)
	if err != nil {
		return &models.StorageError{Op: "template", Path: path, Err: err}
	}
	return writeAtomic(path, out)
}
