package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"globe-quiz-service/internal/domain"
)

// batchFile is the on-disk format accepted by import and lint. JSON files
// parse too since the keys match the API's snake_case question fields.
type batchFile struct {
	CountryID string            `yaml:"country_id"`
	Countries []domain.Country  `yaml:"countries"`
	Questions []domain.Question `yaml:"questions"`
}

func readBatchFile(path string) (batchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return batchFile{}, err
	}
	var batch batchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return batchFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, q := range batch.Questions {
		if q.Difficulty == "" {
			continue
		}
		if _, err := domain.ParseDifficulty(string(q.Difficulty)); err != nil {
			return batchFile{}, fmt.Errorf("question %d: %w", i, err)
		}
	}
	return batch, nil
}
