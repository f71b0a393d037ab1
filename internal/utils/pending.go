package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/formcoach/internal/models"
)

func getPendingPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "formcoach")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "pending_workout.toml"), nil
}

func SavePendingWorkout(w *models.PendingWorkout) error {
	path, err := getPendingPath()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(w)
}

func LoadPendingWorkout() (*models.PendingWorkout, error) {
	path, err := getPendingPath()
	if err != nil {
		return nil, err
	}

	var w models.PendingWorkout
	if _, err := toml.DecodeFile(path, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func ClearPendingWorkout() error {
	path, err := getPendingPath()
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func PendingWorkoutExists() bool {
	path, err := getPendingPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return !os.IsNotExist(err)
}
