package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/fire_alert_system/internal/models"
	"github.com/shenikar/fire_alert_system/internal/service"
	"github.com/shenikar/fire_alert_system/pkg/postgres"
)

const activeHazardsCacheKey = "fire_data:active"

type HazardRepository struct {
	db          postgres.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewHazardRepository(db postgres.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.HazardRepository {
	return &HazardRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// ListActiveHazards возвращает все активные пожары
func (r *HazardRepository) ListActiveHazards(ctx context.Context) ([]*models.Hazard, error) {
	query := `
		SELECT
			id,
			name,
			location,
			county,
			is_active,
			final,
			updated_datetime,
			start_datetime,
			extinguished_datetime,
			acres_burned,
			percent_contained,
			control_statement,
			latitude,
			longitude,
			fire_type,
			url,
			inserted_at
		FROM fire_data
		WHERE is_active = TRUE
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active hazards: %w", err)
	}
	defer rows.Close()

	hazards := make([]*models.Hazard, 0)
	for rows.Next() {
		hazard := &models.Hazard{}
		err := rows.Scan(
			&hazard.ID,
			&hazard.Name,
			&hazard.Location,
			&hazard.County,
			&hazard.IsActive,
			&hazard.Final,
			&hazard.UpdatedAt,
			&hazard.StartedAt,
			&hazard.ExtinguishedAt,
			&hazard.AcresBurned,
			&hazard.PercentContained,
			&hazard.ControlStatement,
			&hazard.Latitude,
			&hazard.Longitude,
			&hazard.FireType,
			&hazard.URL,
			&hazard.InsertedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hazard row: %w", err)
		}
		hazards = append(hazards, hazard)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error hazard list iteration: %w", err)
	}
	return hazards, nil
}

// ListActiveEvacZones возвращает все активные зоны эвакуации
func (r *HazardRepository) ListActiveEvacZones(ctx context.Context) ([]*models.EvacZone, error) {
	query := `
		SELECT
			id,
			name,
			county,
			status,
			notes,
			geometry_geojson,
			is_active,
			updated_at
		FROM evac_zones
		WHERE is_active = TRUE
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active evac zones: %w", err)
	}
	defer rows.Close()

	zones := make([]*models.EvacZone, 0)
	for rows.Next() {
		zone := &models.EvacZone{}
		err := rows.Scan(
			&zone.ID,
			&zone.Name,
			&zone.County,
			&zone.Status,
			&zone.Notes,
			&zone.GeometryGeoJSON,
			&zone.IsActive,
			&zone.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evac zone row: %w", err)
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error evac zone list iteration: %w", err)
	}
	return zones, nil
}

// SeedHazard вставляет пожар, если записи с таким id еще нет.
// Возвращает true, если строка была вставлена.
func (r *HazardRepository) SeedHazard(ctx context.Context, hazard *models.Hazard) (bool, error) {
	query := `
		INSERT INTO fire_data (
			id, name, location, county, is_active, final,
			updated_datetime, start_datetime, extinguished_datetime,
			acres_burned, percent_contained, control_statement,
			latitude, longitude, fire_type, url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		hazard.ID,
		hazard.Name,
		hazard.Location,
		hazard.County,
		hazard.IsActive,
		hazard.Final,
		hazard.UpdatedAt,
		hazard.StartedAt,
		hazard.ExtinguishedAt,
		hazard.AcresBurned,
		hazard.PercentContained,
		hazard.ControlStatement,
		hazard.Latitude,
		hazard.Longitude,
		hazard.FireType,
		hazard.URL,
	)
	if err != nil {
		return false, fmt.Errorf("failed to seed hazard %s: %w", hazard.ID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// SeedEvacZone вставляет зону эвакуации, если записи с таким id еще нет
func (r *HazardRepository) SeedEvacZone(ctx context.Context, zone *models.EvacZone) (bool, error) {
	query := `
		INSERT INTO evac_zones (id, name, county, status, notes, geometry_geojson, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		zone.ID,
		zone.Name,
		zone.County,
		zone.Status,
		zone.Notes,
		zone.GeometryGeoJSON,
		zone.IsActive,
	)
	if err != nil {
		return false, fmt.Errorf("failed to seed evac zone %s: %w", zone.ID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// GetActiveHazardsFromCache пытается получить снимок активных пожаров из Redis.
// При промахе возвращает nil, nil.
func (r *HazardRepository) GetActiveHazardsFromCache(ctx context.Context) ([]*models.Hazard, error) {
	val, err := r.redisClient.Get(ctx, activeHazardsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active hazards from cache: %w", err)
	}

	hazards := make([]*models.Hazard, 0)
	if err := json.Unmarshal(val, &hazards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active hazards from cache: %w", err)
	}
	return hazards, nil
}

// SetActiveHazardsCache сохраняет снимок активных пожаров в Redis
func (r *HazardRepository) SetActiveHazardsCache(ctx context.Context, hazards []*models.Hazard) error {
	if hazards == nil {
		hazards = make([]*models.Hazard, 0)
	}
	val, err := json.Marshal(hazards)
	if err != nil {
		return fmt.Errorf("failed to marshal active hazards for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, activeHazardsCacheKey, val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set active hazards in cache: %w", err)
	}
	return nil
}

// InvalidateActiveHazardsCache удаляет снимок активных пожаров из Redis
func (r *HazardRepository) InvalidateActiveHazardsCache(ctx context.Context) error {
	if err := r.redisClient.Del(ctx, activeHazardsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate active hazards cache: %w", err)
	}
	return nil
}
