package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"globe-quiz-service/internal/domain"
)

const countryColumns = `id, name, capital, continent, population, area, latitude, longitude, flag_url, categories, difficulty`

// CountryStore serves the country reference table and per-country counts
// through a pgx pool.
type CountryStore struct {
	pool *pgxpool.Pool
}

func NewCountryStore(pool *pgxpool.Pool) *CountryStore {
	return &CountryStore{pool: pool}
}

func (s *CountryStore) GetCountry(ctx context.Context, id string) (domain.Country, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+countryColumns+` FROM countries WHERE id=$1`, id)
	c, err := scanCountry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Country{}, domain.ErrCountryNotFound
	}
	if err != nil {
		return domain.Country{}, fmt.Errorf("load country: %w", err)
	}
	return c, nil
}

func (s *CountryStore) ListCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+countryColumns+` FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var out []domain.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpsertCountry inserts or refreshes one reference row.
func (s *CountryStore) UpsertCountry(ctx context.Context, c domain.Country) error {
	difficulty := c.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	categories := c.Categories
	if categories == nil {
		categories = []string{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO countries (`+countryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			capital = EXCLUDED.capital,
			continent = EXCLUDED.continent,
			population = EXCLUDED.population,
			area = EXCLUDED.area,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			flag_url = EXCLUDED.flag_url,
			categories = EXCLUDED.categories,
			difficulty = EXCLUDED.difficulty`,
		c.ID, c.Name, c.Capital, c.Continent, c.Population, c.Area, c.Latitude, c.Longitude, c.FlagURL, categories, string(difficulty))
	if err != nil {
		return fmt.Errorf("upsert country %s: %w", c.ID, err)
	}
	return nil
}

// CountByDifficulty groups a country's questions by level.
func (s *CountryStore) CountByDifficulty(ctx context.Context, countryID string) (map[domain.Difficulty]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT difficulty, COUNT(*) FROM questions WHERE country_id=$1 GROUP BY difficulty`, countryID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Difficulty]int, len(domain.Difficulties))
	for rows.Next() {
		var (
			difficulty string
			n          int
		)
		if err := rows.Scan(&difficulty, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[domain.Difficulty(difficulty)] = n
	}
	return counts, rows.Err()
}

func scanCountry(row pgx.Row) (domain.Country, error) {
	var (
		c          domain.Country
		difficulty string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Capital, &c.Continent, &c.Population, &c.Area,
		&c.Latitude, &c.Longitude, &c.FlagURL, &c.Categories, &difficulty)
	c.Difficulty = domain.Difficulty(difficulty)
	return c, err
}
