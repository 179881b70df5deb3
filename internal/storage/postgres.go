package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/amber/internal/config"
	"github.com/your-org/amber/internal/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Missing persons ---

// ActivePersonIDs seeds the dedup working set with every id currently
// marked ACTIVE.
func (s *PostgresStore) ActivePersonIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM missing_persons WHERE status = 'ACTIVE'`)
	if err != nil {
		return nil, fmt.Errorf("query active ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan active id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// UpsertPerson inserts a record or updates its mutable fields. The id and
// created_at columns never change after the first insert.
func (s *PostgresStore) UpsertPerson(ctx context.Context, p *models.MissingPerson) error {
	riskJSON, err := json.Marshal(p.RiskFactors)
	if err != nil {
		return fmt.Errorf("marshal risk factors: %w", err)
	}
	entitiesJSON, err := json.Marshal(p.Entities)
	if err != nil {
		return fmt.Errorf("marshal entities: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO missing_persons
		   (id, name, age, gender, location, description, photo_key, priority,
		    risk_factors, entities, category, lat, lng, created_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   age = EXCLUDED.age,
		   gender = EXCLUDED.gender,
		   location = EXCLUDED.location,
		   description = EXCLUDED.description,
		   photo_key = EXCLUDED.photo_key,
		   priority = EXCLUDED.priority,
		   risk_factors = EXCLUDED.risk_factors,
		   entities = EXCLUDED.entities,
		   category = EXCLUDED.category,
		   lat = EXCLUDED.lat,
		   lng = EXCLUDED.lng`,
		p.ID, p.Name, p.Age, p.Gender, p.Location, p.Description, p.PhotoKey,
		p.Priority, riskJSON, entitiesJSON, p.Category, p.Lat, p.Lng,
		p.CreatedAt, p.Status)
	if err != nil {
		return fmt.Errorf("upsert person %s: %w", p.ID, err)
	}
	return nil
}

func (s *PostgresStore) GetPerson(ctx context.Context, id string) (*models.MissingPerson, error) {
	p := &models.MissingPerson{}
	var riskJSON, entitiesJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, age, gender, location, description, photo_key, priority,
		        risk_factors, entities, category, lat, lng, created_at, status
		 FROM missing_persons WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Location, &p.Description,
		&p.PhotoKey, &p.Priority, &riskJSON, &entitiesJSON, &p.Category,
		&p.Lat, &p.Lng, &p.CreatedAt, &p.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get person %s: %w", id, err)
	}
	if err := unmarshalPersonJSON(p, riskJSON, entitiesJSON); err != nil {
		return nil, err
	}
	return p, nil
}

// ListActivePersons returns ACTIVE records, newest first.
func (s *PostgresStore) ListActivePersons(ctx context.Context, limit int) ([]models.MissingPerson, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, age, gender, location, description, photo_key, priority,
		        risk_factors, entities, category, lat, lng, created_at, status
		 FROM missing_persons WHERE status = 'ACTIVE'
		 ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list active persons: %w", err)
	}
	defer rows.Close()

	var persons []models.MissingPerson
	for rows.Next() {
		var p models.MissingPerson
		var riskJSON, entitiesJSON []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Location,
			&p.Description, &p.PhotoKey, &p.Priority, &riskJSON, &entitiesJSON,
			&p.Category, &p.Lat, &p.Lng, &p.CreatedAt, &p.Status); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		if err := unmarshalPersonJSON(&p, riskJSON, entitiesJSON); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// ResolvePerson moves a record ACTIVE -> RESOLVED. The reverse transition
// does not exist.
func (s *PostgresStore) ResolvePerson(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE missing_persons SET status = 'RESOLVED'
		 WHERE id = $1 AND status = 'ACTIVE'`, id)
	if err != nil {
		return fmt.Errorf("resolve person %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("person %s not found or already resolved", id)
	}
	return nil
}

func unmarshalPersonJSON(p *models.MissingPerson, riskJSON, entitiesJSON []byte) error {
	if len(riskJSON) > 0 {
		if err := json.Unmarshal(riskJSON, &p.RiskFactors); err != nil {
			return fmt.Errorf("unmarshal risk factors for %s: %w", p.ID, err)
		}
	}
	if len(entitiesJSON) > 0 {
		if err := json.Unmarshal(entitiesJSON, &p.Entities); err != nil {
			return fmt.Errorf("unmarshal entities for %s: %w", p.ID, err)
		}
	}
	return nil
}

// --- Device tokens ---

func (s *PostgresStore) UpsertDeviceToken(ctx context.Context, t models.DeviceToken) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO device_tokens (token, owner_id, platform, active, is_test, registered_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (token) DO UPDATE SET
		   owner_id = EXCLUDED.owner_id,
		   platform = EXCLUDED.platform,
		   active = EXCLUDED.active,
		   is_test = EXCLUDED.is_test,
		   registered_at = EXCLUDED.registered_at`,
		t.Token, t.OwnerID, t.Platform, t.Active, t.IsTest, t.RegisteredAt)
	if err != nil {
		return fmt.Errorf("upsert device token: %w", err)
	}
	return nil
}

// ActiveDeviceTokens returns push-capable targets: active, non-test tokens.
func (s *PostgresStore) ActiveDeviceTokens(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT token FROM device_tokens WHERE active AND NOT is_test`)
	if err != nil {
		return nil, fmt.Errorf("query active tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (s *PostgresStore) TestDeviceTokens(ctx context.Context, limit int) ([]models.DeviceToken, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT token, owner_id, platform, active, is_test, registered_at
		 FROM device_tokens WHERE is_test ORDER BY registered_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query test tokens: %w", err)
	}
	defer rows.Close()

	var tokens []models.DeviceToken
	for rows.Next() {
		var t models.DeviceToken
		if err := rows.Scan(&t.Token, &t.OwnerID, &t.Platform, &t.Active,
			&t.IsTest, &t.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan test token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// DeactivateDeviceToken flags a token the transport reported as invalid.
func (s *PostgresStore) DeactivateDeviceToken(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE device_tokens SET active = FALSE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("deactivate device token: %w", err)
	}
	return nil
}

// --- Notification audit ---

// AppendNotification records one fan-out attempt, success or failure.
func (s *PostgresStore) AppendNotification(ctx context.Context, personID string, outcome models.NotificationOutcome) error {
	var failuresJSON []byte
	if len(outcome.Failures) > 0 {
		var err error
		failuresJSON, err = json.Marshal(outcome.Failures)
		if err != nil {
			return fmt.Errorf("marshal failures: %w", err)
		}
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO notifications (id, person_id, sent_at, target_count, success_count, failures)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), personID, time.Now(), outcome.TargetCount, outcome.SuccessCount, failuresJSON)
	if err != nil {
		return fmt.Errorf("append notification audit: %w", err)
	}
	return nil
}

// --- Sightings ---

func (s *PostgresStore) CreateSighting(ctx context.Context, sg *models.Sighting) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO sighting_reports (person_id, reporter_lat, reporter_lng, reported_at, status)
		 VALUES ($1, $2, $3, $4, 'PENDING') RETURNING id`,
		sg.PersonID, sg.Lat, sg.Lng, sg.ReportedAt,
	).Scan(&sg.ID)
	if err != nil {
		return fmt.Errorf("create sighting: %w", err)
	}
	sg.Status = "PENDING"
	return nil
}

// --- Fetch audit ---

// LogFetch records one registry fetch attempt for the statistics endpoint.
func (s *PostgresStore) LogFetch(ctx context.Context, resultCount int, success bool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO fetch_log (requested_at, result_count, success) VALUES ($1, $2, $3)`,
		time.Now(), resultCount, success)
	if err != nil {
		return fmt.Errorf("log fetch: %w", err)
	}
	return nil
}

// LastFetchTime returns the timestamp of the most recent fetch attempt,
// or the zero time when no fetch has been logged yet.
func (s *PostgresStore) LastFetchTime(ctx context.Context) (time.Time, error) {
	var t time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(requested_at), 'epoch'::timestamptz) FROM fetch_log`,
	).Scan(&t)
	if err != nil {
		return time.Time{}, fmt.Errorf("query last fetch time: %w", err)
	}
	if t.Unix() <= 0 {
		return time.Time{}, nil
	}
	return t, nil
}

// Statistics summarises today's pipeline activity.
type Statistics struct {
	TotalActive         int
	HighPriority        int
	TodayFetches        int
	TodayFetchSuccesses int
	TodayNotifications  int
	TodayPushSuccesses  int
}

func (s *PostgresStore) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}

	err := s.pool.QueryRow(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM missing_persons WHERE status = 'ACTIVE'),
		  (SELECT COUNT(*) FROM missing_persons WHERE status = 'ACTIVE' AND priority = 'HIGH'),
		  (SELECT COUNT(*) FROM fetch_log WHERE requested_at::date = CURRENT_DATE),
		  (SELECT COUNT(*) FROM fetch_log WHERE success AND requested_at::date = CURRENT_DATE),
		  (SELECT COUNT(*) FROM notifications WHERE sent_at::date = CURRENT_DATE),
		  (SELECT COALESCE(SUM(success_count), 0) FROM notifications WHERE sent_at::date = CURRENT_DATE)`,
	).Scan(&stats.TotalActive, &stats.HighPriority, &stats.TodayFetches,
		&stats.TodayFetchSuccesses, &stats.TodayNotifications, &stats.TodayPushSuccesses)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}

	return stats, nil
}
