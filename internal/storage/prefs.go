package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/misterclayt0n/formcoach/internal/models"
	"github.com/misterclayt0n/formcoach/internal/utils"
)

var ErrNotOnboarded = errors.New("onboarding not completed, run `formcoach init` first")

const (
	prefDisplayName        = "display_name"
	prefOnboardingComplete = "onboarding_complete"
	prefWeightKg           = "weight_kg"
)

func (s *Storage) SetPref(key, value string) error {
	_, err := s.DB.Exec(
		`INSERT INTO user_prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}

// GetPref returns the stored value and whether the key exists.
func (s *Storage) GetPref(key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRow("SELECT value FROM user_prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return value, true, nil
}

// Profile returns the onboarded user profile, or ErrNotOnboarded.
func (s *Storage) Profile() (*models.Profile, error) {
	done, _, err := s.GetPref(prefOnboardingComplete)
	if err != nil {
		return nil, err
	}
	if done != "1" {
		return nil, ErrNotOnboarded
	}

	var p models.Profile
	p.OnboardingComplete = true
	if p.DisplayName, _, err = s.GetPref(prefDisplayName); err != nil {
		return nil, err
	}

	weight, ok, err := s.GetPref(prefWeightKg)
	if err != nil {
		return nil, err
	}
	if ok {
		p.WeightKg, _ = strconv.ParseFloat(weight, 64)
	}
	return &p, nil
}

func (s *Storage) SaveProfile(p models.Profile) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prefs := map[string]string{
		prefDisplayName:        p.DisplayName,
		prefOnboardingComplete: strconv.Itoa(utils.BoolToInt(p.OnboardingComplete)),
		prefWeightKg:           strconv.FormatFloat(p.WeightKg, 'f', -1, 64),
	}
	for key, value := range prefs {
		if _, err := tx.Exec(
			`INSERT INTO user_prefs (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("failed to save preference %s: %w", key, err)
		}
	}
	return tx.Commit()
}
